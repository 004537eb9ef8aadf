package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/naturebridge/store_backend/controllers"
	"github.com/naturebridge/store_backend/middleware"
)

// RegisterCatalogRoutes sets up the public catalog plus the admin CRUD
// behind it: products, categories, ebooks, courses, banners, offers,
// pincodes, settings and reviews
func RegisterCatalogRoutes(e *echo.Echo, db *mongo.Client) {
	productController := controllers.NewProductController(db)
	categoryController := controllers.NewCategoryController(db)
	ebookController := controllers.NewEbookController(db)
	courseController := controllers.NewCourseController(db)
	bannerController := controllers.NewBannerController(db)
	offerController := controllers.NewOfferController(db)
	pincodeController := controllers.NewPincodeController(db)
	settingController := controllers.NewSettingController(db)
	reviewController := controllers.NewReviewController(db)

	// Public storefront routes
	pub := e.Group("/api")
	pub.GET("/products", productController.ListProducts)
	pub.GET("/products/:slug", productController.GetProductBySlug)
	pub.GET("/products/:productId/reviews", reviewController.ListProductReviews)
	pub.GET("/categories", categoryController.ListCategories)
	pub.GET("/ebooks", ebookController.ListEbooks)
	pub.GET("/ebooks/:slug", ebookController.GetEbookBySlug)
	pub.GET("/courses", courseController.ListCourses)
	pub.GET("/courses/:slug", courseController.GetCourseBySlug)
	pub.GET("/banners", bannerController.ListBanners)
	pub.GET("/offers/validate", offerController.ValidateOffer)
	pub.GET("/pincodes/check/:code", pincodeController.CheckPincode)
	pub.GET("/settings/:key", settingController.GetSetting)

	// Purchase-gated digital content
	gated := e.Group("/api")
	gated.Use(middleware.JWTMiddleware())
	gated.GET("/ebooks/:id/download", ebookController.DownloadEbook)
	gated.GET("/courses/:id/access", courseController.AccessCourse)
	gated.POST("/products/:productId/reviews", reviewController.CreateReview)

	// Admin catalog management
	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())

	admin.POST("/products", productController.CreateProduct)
	admin.PUT("/products/:id", productController.UpdateProduct)
	admin.DELETE("/products/:id", productController.DeleteProduct)
	admin.POST("/products/:id/images", productController.UploadProductImage)

	admin.POST("/categories", categoryController.CreateCategory)
	admin.PUT("/categories/:id", categoryController.UpdateCategory)
	admin.DELETE("/categories/:id", categoryController.DeleteCategory)

	admin.POST("/ebooks", ebookController.CreateEbook)
	admin.POST("/ebooks/:id/pdf", ebookController.UploadEbookPDF)

	admin.POST("/courses", courseController.CreateCourse)
	admin.PUT("/courses/:id", courseController.UpdateCourse)

	admin.POST("/banners", bannerController.CreateBanner)
	admin.DELETE("/banners/:id", bannerController.DeleteBanner)

	admin.GET("/offers", offerController.ListOffers)
	admin.POST("/offers", offerController.CreateOffer)
	admin.DELETE("/offers/:id", offerController.DeleteOffer)

	admin.GET("/pincodes", pincodeController.ListPincodes)
	admin.POST("/pincodes", pincodeController.AddPincode)
	admin.DELETE("/pincodes/:id", pincodeController.RemovePincode)

	admin.GET("/settings", settingController.ListSettings)
	admin.PUT("/settings", settingController.UpsertSetting)

	admin.GET("/reviews/pending", reviewController.ListPendingReviews)
	admin.PUT("/reviews/:id/approve", reviewController.ApproveReview)
	admin.PUT("/reviews/:id/reject", reviewController.RejectReview)
	admin.DELETE("/reviews/:id", reviewController.DeleteReview)
}
