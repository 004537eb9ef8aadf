// controllers/auth_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/naturebridge/store_backend/middleware"
	"github.com/naturebridge/store_backend/models"
	"github.com/naturebridge/store_backend/repositories"
	"github.com/naturebridge/store_backend/utils"
)

type AuthController struct {
	DB    *mongo.Client
	users *repositories.UserRepository
}

func NewAuthController(db *mongo.Client) *AuthController {
	return &AuthController{
		DB:    db,
		users: repositories.NewUserRepository(db),
	}
}

// Register creates a new customer account. A valid referral code in the
// payload links the account to the referring partner for the lifetime
// of the account.
func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	user := models.User{
		Name:     utils.SanitizeInput(req.Name),
		Email:    email,
		Password: string(hashedPassword),
		Phone:    req.Phone,
		Role:     "user",
	}

	// Signup-time attribution: an invalid code is ignored, not fatal
	if req.ReferralCode != "" {
		partner, err := ac.users.FindPartnerByReferralCode(ctx, strings.TrimSpace(req.ReferralCode))
		if err == nil {
			user.ReferredBy = &partner.ID
		} else if err != models.ErrPartnerNotFound {
			log.Printf("Referral lookup failed during registration: %v", err)
		}
	}

	userID, err := ac.users.Create(ctx, &user)
	if err != nil {
		if err == models.ErrEmailTaken {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "User already exists with this email",
			})
		}
		log.Printf("Failed to create user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	token, _, err := middleware.GenerateJWT(userID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Registration successful",
		Data: models.LoginResponse{
			Token: token,
			User: models.AuthUser{
				ID:    userID.Hex(),
				Name:  user.Name,
				Email: user.Email,
				Role:  user.Role,
			},
		},
	})
}

// RegisterPartner creates a partner account with a fresh referral code.
func (ac *AuthController) RegisterPartner(c echo.Context) error {
	var req models.PartnerRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	referralCode, err := utils.GenerateReferralCode(req.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate referral code",
		})
	}

	user := models.User{
		Name:           utils.SanitizeInput(req.Name),
		Email:          email,
		Password:       string(hashedPassword),
		Phone:          req.Phone,
		Role:           "partner",
		IsPartner:      true,
		ReferralCode:   referralCode,
		CommissionRate: 10, // default rate, adjustable by admins
	}

	userID, err := ac.users.Create(ctx, &user)
	if err != nil {
		if err == models.ErrEmailTaken {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "User already exists with this email",
			})
		}
		log.Printf("Failed to create partner: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create partner",
		})
	}

	token, _, err := middleware.GenerateJWT(userID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Partner registration successful",
		Data: models.LoginResponse{
			Token: token,
			User: models.AuthUser{
				ID:           userID.Hex(),
				Name:         user.Name,
				Email:        user.Email,
				Role:         user.Role,
				IsPartner:    true,
				ReferralCode: referralCode,
			},
		},
	})
}

// Login authenticates a user and returns a signed JWT
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := ac.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	token, _, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: models.LoginResponse{
			Token: token,
			User: models.AuthUser{
				ID:           user.ID.Hex(),
				Name:         user.Name,
				Email:        user.Email,
				Role:         user.Role,
				IsPartner:    user.IsPartner,
				ReferralCode: user.ReferralCode,
			},
		},
	})
}

// Logout blacklists the presented token until its natural expiry
func (ac *AuthController) Logout(c echo.Context) error {
	userToken, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "No valid token found",
		})
	}

	expiry := time.Now().Add(7 * 24 * time.Hour)
	if claims, ok := userToken.Claims.(*middleware.JwtCustomClaims); ok && claims.ExpiresAt > 0 {
		expiry = time.Unix(claims.ExpiresAt, 0)
	}
	middleware.BlacklistToken(userToken.Raw, expiry)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out successfully",
	})
}
