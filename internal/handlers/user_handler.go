package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/activity-atlas/server/internal/managers"
	"github.com/activity-atlas/server/internal/schemas"
	"github.com/activity-atlas/server/internal/utils"
)

// UserHdl defines the interface for handling user-related HTTP requests.
type UserHdl interface {
	Signup(ctx *gin.Context)
	Login(ctx *gin.Context)
	GetUsers(ctx *gin.Context)
}

// UserHandler provides methods to handle user-related HTTP requests.
// Signup and Login are the consumers of the token service: both respond
// with a fresh bearer token binding subsequent requests to the user.
type UserHandler struct {
	DatabaseManager managers.DatabaseMgr
	JWTManager      managers.JWTMgr
}

var errEmailTaken = errors.New("email already registered")
var errWrongCredentials = errors.New("unknown email or wrong password")

// passwordHashCost is the bcrypt work factor for stored password hashes.
const passwordHashCost = 12

// NewUserHandler returns a new UserHandler with the provided managers.
func NewUserHandler(databaseManager *managers.DatabaseMgr, jwtManager *managers.JWTMgr) UserHdl {
	return &UserHandler{
		DatabaseManager: *databaseManager,
		JWTManager:      *jwtManager,
	}
}

// Signup registers a new user. The password is hashed before storage and the
// user starts with an empty activity collection.
func (handler *UserHandler) Signup(ctx *gin.Context) {
	// Begin a new transaction
	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	signupRequest := ctx.Value(utils.SanitizedPayloadKey.String()).(*schemas.SignupRequest)

	// Check if the email is already registered
	queryString := "SELECT user_id FROM atlas_schema.users WHERE email = $1"
	row := tx.QueryRow(ctx, queryString, signupRequest.Email)

	var existingUserId string
	err := row.Scan(&existingUserId)
	if err == nil {
		utils.WriteAndLogError(ctx, schemas.UserAlreadyExists, http.StatusUnprocessableEntity, errEmailTaken)
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signupRequest.Password), passwordHashCost)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	// Insert the user with an empty activity collection
	userId := uuid.New()
	createdAt := time.Now()

	user := &schemas.User{
		ID:        &userId,
		Name:      signupRequest.Name,
		Email:     signupRequest.Email,
		Password:  string(hashedPassword),
		CreatedAt: &createdAt,
	}

	queryString = "INSERT INTO atlas_schema.users (user_id, name, email, password, created_at) VALUES ($1, $2, $3, $4, $5)"
	if _, err = tx.Exec(ctx, queryString, user.ID, user.Name, user.Email, user.Password, user.CreatedAt); err != nil {
		// Concurrent signups can both pass the pre-check; the unique constraint
		// decides the loser, which still gets the duplicate-email answer
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			utils.WriteAndLogError(ctx, schemas.UserAlreadyExists, http.StatusUnprocessableEntity, err)
			return
		}

		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	// Issue the bearer token for the fresh identity
	claims := handler.JWTManager.GenerateClaims(user.ID.String(), user.Email)
	token, err := handler.JWTManager.GenerateJWT(claims)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	// Commit the transaction
	if err := utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	authDto := &schemas.AuthDTO{
		UserId: user.ID.String(),
		Email:  user.Email,
		Token:  token,
	}

	utils.WriteAndLogResponse(ctx, authDto, http.StatusCreated)
}

// Login verifies the credentials of an existing user and issues a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (handler *UserHandler) Login(ctx *gin.Context) {
	loginRequest := ctx.Value(utils.SanitizedPayloadKey.String()).(*schemas.LoginRequest)

	queryString := "SELECT user_id, password FROM atlas_schema.users WHERE email = $1"
	row := handler.DatabaseManager.GetPool().QueryRow(ctx, queryString, loginRequest.Email)

	var userId, hashedPassword string
	if err := row.Scan(&userId, &hashedPassword); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(ctx, schemas.InvalidCredentials, http.StatusUnauthorized, errWrongCredentials)
			return
		}

		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(loginRequest.Password)); err != nil {
		utils.WriteAndLogError(ctx, schemas.InvalidCredentials, http.StatusUnauthorized, errWrongCredentials)
		return
	}

	claims := handler.JWTManager.GenerateClaims(userId, loginRequest.Email)
	token, err := handler.JWTManager.GenerateJWT(claims)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	authDto := &schemas.AuthDTO{
		UserId: userId,
		Email:  loginRequest.Email,
		Token:  token,
	}

	utils.WriteAndLogResponse(ctx, authDto, http.StatusOK)
}

// GetUsers lists all registered users. Password hashes never leave the store.
func (handler *UserHandler) GetUsers(ctx *gin.Context) {
	queryString := "SELECT user_id, name, email FROM atlas_schema.users ORDER BY created_at"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	users := make([]*schemas.UserDTO, 0)
	for rows.Next() {
		user := &schemas.UserDTO{}
		if err := rows.Scan(&user.UserId, &user.Name, &user.Email); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, users, http.StatusOK)
}
