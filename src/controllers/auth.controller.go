package controllers

import (
	"bookit/src/db"
	"bookit/src/models"
	"bookit/src/types"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const tokenTTL = 7 * 24 * time.Hour

func AuthRegister(ctx *gin.Context) (user *models.User, token *string, status int, err error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var count int64
	if err := db.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		Count(&count).
		Error; err != nil {
		return nil, nil, http.StatusInternalServerError, err
	}
	if count > 0 {
		err := errors.New("user already exists with this email")
		return nil, nil, http.StatusBadRequest, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %s\n", err.Error())
		return nil, nil, http.StatusInternalServerError, err
	}
	newUser := models.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: string(hash),
		Role:     types.ROLE_USER,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&newUser).Error
	}); err != nil {
		log.Printf("Error creating user: %s\n", err.Error())
		return nil, nil, http.StatusBadRequest, err
	}

	t, err := GenerateJWT(&newUser)
	if err != nil {
		return nil, nil, http.StatusInternalServerError, err
	}
	return &newUser, &t, http.StatusCreated, nil
}

func AuthLogin(ctx *gin.Context) (user *models.User, token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var muser models.User
	if err := db.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&muser).
		Error; err != nil {
		log.Printf("error: %s\n", err.Error())
		err := errors.New("invalid email or password")
		return nil, nil, http.StatusUnauthorized, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(muser.Password), []byte(body.Password)); err != nil {
		err := errors.New("invalid email or password")
		return nil, nil, http.StatusUnauthorized, err
	}

	t, err := GenerateJWT(&muser)
	if err != nil {
		return nil, nil, http.StatusInternalServerError, err
	}
	return &muser, &t, http.StatusOK, nil
}

func GenerateJWT(user *models.User) (string, error) {
	claims := types.Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(jwtKey)
}
