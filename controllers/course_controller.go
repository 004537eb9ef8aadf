// controllers/course_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/naturebridge/store_backend/config"
	"github.com/naturebridge/store_backend/models"
	"github.com/naturebridge/store_backend/utils"
)

type CourseController struct {
	DB *mongo.Client
}

func NewCourseController(db *mongo.Client) *CourseController {
	return &CourseController{DB: db}
}

// ListCourses returns the active course catalog without module content
func (cc *CourseController) ListCourses(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"isActive": true}
	if category := c.QueryParam("category"); category != "" {
		filter["category"] = category
	}
	if level := c.QueryParam("level"); level != "" {
		filter["level"] = level
	}

	collection := config.GetCollection(cc.DB, "courses")
	cursor, err := collection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"modules": 0}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve courses",
		})
	}
	defer cursor.Close(ctx)

	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode courses",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Courses retrieved successfully",
		Data:    courses,
	})
}

// GetCourseBySlug returns the public course page. Modules stay gated.
func (cc *CourseController) GetCourseBySlug(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(cc.DB, "courses")

	var course models.Course
	err := collection.FindOne(ctx,
		bson.M{"slug": c.Param("slug"), "isActive": true},
		options.FindOne().SetProjection(bson.M{"modules": 0}),
	).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Course not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve course",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Course retrieved successfully",
		Data:    course,
	})
}

// AccessCourse returns the full course with modules, gated on
// enrollment. Free courses are open to any authenticated user.
func (cc *CourseController) AccessCourse(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid course ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var course models.Course
	err = config.GetCollection(cc.DB, "courses").FindOne(ctx, bson.M{"_id": courseID, "isActive": true}).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Course not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve course",
		})
	}

	if !course.IsFree {
		count, err := config.GetCollection(cc.DB, "users").CountDocuments(ctx, bson.M{
			"_id":              userID,
			"purchasedCourses": courseID,
		})
		if err != nil || count == 0 {
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Purchase required to access this course",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Course access granted",
		Data:    course,
	})
}

// CreateCourse creates a course. Admin only.
func (cc *CourseController) CreateCourse(c echo.Context) error {
	var course models.Course
	if err := c.Bind(&course); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if course.Slug == "" {
		course.Slug = utils.Slugify(course.Title)
	}
	if err := c.Validate(&course); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}
	if course.Level == "" {
		course.Level = "Beginner"
	}

	course.ID = primitive.NewObjectID()
	course.IsActive = true
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.GetCollection(cc.DB, "courses").InsertOne(ctx, course); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Course with this slug already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create course",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Course created successfully",
		Data:    course,
	})
}

// UpdateCourse updates a course document. Admin only.
func (cc *CourseController) UpdateCourse(c echo.Context) error {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid course ID",
		})
	}

	var update bson.M
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	delete(update, "_id")
	delete(update, "id")
	delete(update, "createdAt")
	delete(update, "enrolledCount")
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.GetCollection(cc.DB, "courses").UpdateByID(ctx, courseID, bson.M{"$set": update})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update course",
		})
	}
	if res.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Course not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Course updated successfully",
	})
}
