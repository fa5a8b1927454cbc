package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dipto6969/Police-Positive/api"
	"github.com/Dipto6969/Police-Positive/config"
	"github.com/Dipto6969/Police-Positive/databases"
	"github.com/Dipto6969/Police-Positive/models"
)

// Auth exported for testing purposes
type Auth struct {
	DB     databases.UserDatabase
	Secret string
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        string `json:"role"`
	BadgeNumber string `json:"badgeNumber"`
	Department  string `json:"department"`
	Phone       string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// generateToken signs a 24h HS256 token carrying the user identity
func generateToken(user models.User, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// RegisterHandler creates a user account and returns it with a fresh token
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to unmarshal request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" || req.Role == "" {
		config.ErrorStatus("Missing required fields", http.StatusBadRequest, w, nil)
		return
	}

	existing, _ := a.DB.FindOne(r.Context(), bson.M{"email": req.Email})
	if existing != nil {
		config.ErrorStatus("Email already exists", http.StatusBadRequest, w, nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now()
	user := models.User{
		ID:          primitive.NewObjectID(),
		Email:       req.Email,
		Password:    string(hash),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		BadgeNumber: req.BadgeNumber,
		Department:  req.Department,
		Phone:       req.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := a.DB.InsertOne(r.Context(), user); err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	token, err := generateToken(user, a.Secret)
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(authResponse{User: user, Token: token})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// LoginHandler verifies credentials and returns the user with a fresh
// token. Unknown email and wrong password produce the same response.
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to unmarshal request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		config.ErrorStatus("Email and password required", http.StatusBadRequest, w, nil)
		return
	}

	user, err := a.DB.FindOne(r.Context(), bson.M{"email": req.Email})
	if err != nil {
		config.ErrorStatus("Invalid credentials", http.StatusUnauthorized, w, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		config.ErrorStatus("Invalid credentials", http.StatusUnauthorized, w, err)
		return
	}

	token, err := generateToken(*user, a.Secret)
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(authResponse{User: *user, Token: token})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// VerifyHandler re-resolves the actor behind a valid token against the
// user store, so deleted accounts stop verifying.
func (a Auth) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := api.ActorFromContext(r.Context())
	if !ok || actor.ID == "" {
		config.ErrorStatus("Malformed token payload", http.StatusBadRequest, w, nil)
		return
	}
	oid, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		config.ErrorStatus("Malformed token payload", http.StatusBadRequest, w, err)
		return
	}

	user, err := a.DB.FindOne(r.Context(), bson.M{"_id": oid})
	if err != nil {
		config.ErrorStatus("User not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.User{"user": *user})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
