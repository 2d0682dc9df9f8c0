package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"conference-webapp/database"
	"conference-webapp/errors"
	"conference-webapp/model"
)

func isPasswordHashCorrect(dbHash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(pass))
	return err == nil
}

func Login(c *fiber.Ctx) error {
	type Credentials struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	var creds = new(Credentials)
	if err := c.BodyParser(&creds); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("cannot parse credentials: %v", err))
	}

	user, getErr := Users.GetUserByLogin(c.Context(), strings.ToLower(strings.TrimSpace(creds.Login)))
	if getErr != nil && getErr != database.ErrUserNotFound {
		return errors.RaiseInternalServerError(c, "error on login request when comparing user data")
	}
	// same rejection for unknown login and wrong password
	if getErr != nil || !isPasswordHashCorrect(user.HashedPassword, creds.Password) {
		return errors.RaiseError(c, fiber.StatusUnauthorized, "invalid credentials", "")
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["id"] = user.Id.Hex()
	claims["username"] = user.Login
	claims["role"] = string(user.Role)
	claims["exp"] = time.Now().Add(TokenTTL).Unix()

	t, err := token.SignedString([]byte(SignKey))
	if err != nil {
		log.Error().Err(err).Msg("could not sign token")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Success login", "data": t})
}

func Signup(c *fiber.Ctx) error {
	type SignupRequest struct {
		Name     string `json:"name"`
		Login    string `json:"login"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	req := new(SignupRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("cannot parse signup request: %v", err))
	}

	req.Login = strings.ToLower(strings.TrimSpace(req.Login))
	if req.Login == "" || !strings.Contains(req.Login, "@") {
		return errors.RaiseBadRequestError(c, "a valid email is required as login")
	}
	if len(req.Password) < 6 {
		return errors.RaiseBadRequestError(c, "password should be at least 6 characters")
	}
	role := model.Role(req.Role)
	if !role.Valid() {
		return errors.RaiseBadRequestError(c, "role must be organizer or attendee")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.RaiseInternalServerError(c, "could not process password")
	}

	user := model.UserData{
		Id:             primitive.NewObjectID(),
		Login:          req.Login,
		Name:           strings.TrimSpace(req.Name),
		HashedPassword: string(hash),
		Role:           role,
		CreatedAt:      time.Now().UTC(),
	}

	if err := Users.CreateUser(c.Context(), user); err != nil {
		if err == database.ErrLoginTaken {
			return errors.RaiseError(c, fiber.StatusConflict, "login already taken", req.Login)
		}
		return errors.RaiseInternalServerError(c, "could not create user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "user created",
		"data":    user})
}
