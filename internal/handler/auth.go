package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"wearable-server/internal/auth"
	"wearable-server/internal/middleware"
	"wearable-server/internal/storage"
)

type AuthHandler struct {
	DB          storage.Database
	TokenConfig auth.TokenConfig
	Logger      *zap.Logger
}

type signupBody struct {
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Age      *int     `json:"age"`
	Weight   *float64 `json:"weight"`
	Gender   string   `json:"gender"`
	Height   *float64 `json:"height"`
}

type loginBody struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (b signupBody) missing() []string {
	var missing []string
	if b.Name == "" {
		missing = append(missing, "name")
	}
	if b.Password == "" {
		missing = append(missing, "password")
	}
	if b.Age == nil {
		missing = append(missing, "age")
	}
	if b.Weight == nil {
		missing = append(missing, "weight")
	}
	if b.Gender == "" {
		missing = append(missing, "gender")
	}
	if b.Height == nil {
		missing = append(missing, "height")
	}
	return missing
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var body signupBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
		return
	}
	if missing := body.missing(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "All fields are required!", "missing": missing})
		return
	}

	users := h.DB.Collection(storage.Users)
	_, err := users.FindOne(c.Request.Context(), storage.Document{"name": body.Name})
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "User already exists!"})
		return
	}
	if !errors.Is(err, storage.ErrNotFound) {
		h.Logger.Error("signup: user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
		return
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		h.Logger.Error("signup: hash failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
		return
	}

	id, err := users.InsertOne(c.Request.Context(), storage.Document{
		"name":     body.Name,
		"password": hash,
		"age":      *body.Age,
		"weight":   *body.Weight,
		"gender":   body.Gender,
		"height":   *body.Height,
	})
	if err != nil {
		h.Logger.Error("signup: insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
		return
	}

	token, err := auth.CreateToken(id, body.Name, h.TokenConfig)
	if err != nil {
		h.Logger.Error("signup: token creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "User registered successfully!", "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
		return
	}

	users := h.DB.Collection(storage.Users)
	user, err := users.FindOne(c.Request.Context(), storage.Document{"name": body.Name})
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "User not found!"})
		return
	}
	if err != nil {
		h.Logger.Error("login: user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
		return
	}

	hash, _ := user["password"].(string)
	if !auth.CheckPassword(hash, body.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid credentials!"})
		return
	}

	id, _ := user["_id"].(string)
	token, err := auth.CreateToken(id, body.Name, h.TokenConfig)
	if err != nil {
		h.Logger.Error("login: token creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "token": token})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	claims, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized: No token provided"})
		return
	}

	users := h.DB.Collection(storage.Users)
	user, err := users.FindOne(c.Request.Context(), storage.Document{"_id": claims.UserID})
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found!"})
		return
	}
	if err != nil {
		h.Logger.Error("profile: user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "user": gin.H{
		"name":   user["name"],
		"age":    user["age"],
		"weight": user["weight"],
		"height": user["height"],
		"gender": user["gender"],
	}})
}
