package accounts

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/smtp"
	"pricewise-backend/lib/telemetry"
	"pricewise-backend/lib/timezone"
	"pricewise-backend/services/accounts/db"
	"strings"
	"time"

	"github.com/jordan-wright/email"
	random "github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

var tracer = telemetry.Tracer("pricewise.services.accounts")

var ErrUserExists = fmt.Errorf("an account with this username or email already exists")
var ErrInvalidLogin = fmt.Errorf("invalid username or password")
var ErrInvalidToken = fmt.Errorf("invalid session token")
var ErrInvalidResetCode = fmt.Errorf("invalid or expired reset code")
var ErrUnknownEmail = fmt.Errorf("no account with this email address")

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type Options struct {
	Smtp SmtpConfig
}

// User is the account record handed to callers, it never carries the
// password hash.
type User struct {
	ID       int64
	Username string
	Email    string
}

type HistoryEntry struct {
	Query string
	Time  time.Time
}

type Service struct {
	db     *sql.DB
	qry    *db.Queries
	config Options
}

func NewService(database *sql.DB, options Options) Service {
	return Service{
		db:     database,
		qry:    db.New(database),
		config: options,
	}
}

func normalizeName(name string) string {
	return strings.Trim(strings.ToLower(name), " \t\n")
}

func userFromRow(row db.User) User {
	return User{
		ID:       row.ID,
		Username: row.Username,
		Email:    row.Email,
	}
}

func (s Service) CreateUser(ctx context.Context, username, email, password string) (User, error) {
	ctx, span := tracer.Start(ctx, "CreateUser")
	defer span.End()

	username = normalizeName(username)
	email = normalizeName(email)
	if username == "" || email == "" || password == "" {
		return User{}, fmt.Errorf("username, email and password are all required")
	}

	hash, err := hashPassword(password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to hash password")
		return User{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return User{}, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	_, err = txqry.GetUserByUsername(ctx, username)
	if err == nil {
		return User{}, ErrUserExists
	}
	if err != sql.ErrNoRows {
		return User{}, err
	}
	_, err = txqry.GetUserByEmail(ctx, email)
	if err == nil {
		return User{}, ErrUserExists
	}
	if err != sql.ErrNoRows {
		return User{}, err
	}

	id, err := txqry.CreateUser(ctx, db.CreateUserParams{
		Username:     username,
		Email:        email,
		Passwordhash: hash,
		Createdat:    timezone.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert user row")
		return User{}, err
	}

	err = tx.Commit()
	if err != nil {
		return User{}, err
	}

	return User{ID: id, Username: username, Email: email}, nil
}

func (s Service) createSessionToken(ctx context.Context, txqry *db.Queries, userId int64) (string, error) {
	ctx, span := tracer.Start(ctx, "createSessionToken")
	defer span.End()

	nonce := make([]byte, 32)
	_, err := rand.Read(nonce)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to generate token")
		return "", err
	}
	token := hex.EncodeToString(nonce)
	err = txqry.CreateSession(ctx, db.CreateSessionParams{
		Token:     token,
		Userid:    userId,
		Createdat: timezone.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert session row")
		return "", err
	}

	return token, nil
}

func (s Service) Login(ctx context.Context, username, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	row, err := s.qry.GetUserByUsername(ctx, normalizeName(username))
	if err == sql.ErrNoRows {
		span.SetStatus(codes.Error, "unknown username")
		return "", ErrInvalidLogin
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read user row")
		return "", err
	}
	if !verifyPassword(row.Passwordhash, password) {
		span.SetStatus(codes.Error, "password mismatch")
		return "", ErrInvalidLogin
	}

	token, err := s.createSessionToken(ctx, s.qry, row.ID)
	if err != nil {
		return "", err
	}

	countLogin(ctx, row.Username)

	return token, nil
}

func (s Service) VerifyToken(ctx context.Context, token string) (User, error) {
	ctx, span := tracer.Start(ctx, "VerifyToken")
	defer span.End()

	row, err := s.qry.GetSessionUser(ctx, token)
	if err == sql.ErrNoRows {
		span.SetStatus(codes.Error, "invalid token")
		return User{}, ErrInvalidToken
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "got unexpected error while reading token")
		return User{}, err
	}

	return userFromRow(row), nil
}

func (s Service) Logout(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "Logout")
	defer span.End()

	return s.qry.DeleteSession(ctx, token)
}

func (s Service) AppendHistory(ctx context.Context, userId int64, query string) error {
	ctx, span := tracer.Start(ctx, "AppendHistory")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return s.qry.CreateSearchHistory(ctx, db.CreateSearchHistoryParams{
		Userid:    userId,
		Query:     query,
		Createdat: timezone.Now().Unix(),
	})
}

func (s Service) ListHistory(ctx context.Context, userId int64) ([]HistoryEntry, error) {
	ctx, span := tracer.Start(ctx, "ListHistory")
	defer span.End()

	rows, err := s.qry.ListSearchHistory(ctx, userId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read history rows")
		return nil, err
	}

	entries := make([]HistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = HistoryEntry{
			Query: row.Query,
			Time:  time.Unix(row.Createdat, 0).In(timezone.Location),
		}
	}
	return entries, nil
}

func (s Service) StartReset(ctx context.Context, userEmail string) error {
	ctx, span := tracer.Start(ctx, "StartReset")
	defer span.End()

	userEmail = normalizeName(userEmail)
	row, err := s.qry.GetUserByEmail(ctx, userEmail)
	if err == sql.ErrNoRows {
		span.SetStatus(codes.Error, "unknown email")
		return ErrUnknownEmail
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read user row")
		return err
	}

	code, err := random.String(8)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to generate reset code")
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	// only the most recent code for a user is valid
	err = txqry.DeleteResetCodesForUser(ctx, row.ID)
	if err != nil {
		return err
	}
	err = txqry.CreateResetCode(ctx, db.CreateResetCodeParams{
		Code:      code,
		Userid:    row.ID,
		Expiresat: timezone.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert reset code row")
		return err
	}
	err = tx.Commit()
	if err != nil {
		return err
	}

	return s.sendResetCode(ctx, userEmail, code)
}

func (s Service) sendResetCode(ctx context.Context, userEmail, code string) error {
	ctx, span := tracer.Start(ctx, "sendResetCode")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("PriceWise <%s>", s.config.Smtp.EmailAddress)
	mail.To = []string{userEmail}
	mail.Subject = "Password Reset Code"

	body := fmt.Sprintf(`Please enter the following code to reset your PriceWise password.

%s

If you didn't request a reset, please ignore this email.`, code)
	mail.Text = []byte(body)

	err := mail.Send(
		fmt.Sprintf("%s:%d", s.config.Smtp.Server, s.config.Smtp.Port),
		smtp.PlainAuth("", s.config.Smtp.EmailAddress, s.config.Smtp.Password, s.config.Smtp.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(fmt.Sprintf("%s:%d", s.config.Smtp.Server, s.config.Smtp.Port), nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}

	return nil
}

func (s Service) ConsumeReset(ctx context.Context, userEmail, providedCode, newPassword string) error {
	ctx, span := tracer.Start(ctx, "ConsumeReset")
	defer span.End()

	if newPassword == "" {
		return fmt.Errorf("a new password is required")
	}
	providedCode = strings.Trim(providedCode, " \t\n")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	row, err := txqry.GetUserByEmail(ctx, normalizeName(userEmail))
	if err == sql.ErrNoRows {
		span.SetStatus(codes.Error, "unknown email")
		return ErrInvalidResetCode
	}
	if err != nil {
		return err
	}

	reset, err := txqry.GetResetCode(ctx, db.GetResetCodeParams{
		Code:   providedCode,
		Userid: row.ID,
	})
	if err == sql.ErrNoRows {
		span.SetStatus(codes.Error, "invalid reset code")
		return ErrInvalidResetCode
	}
	if err != nil {
		return err
	}
	if timezone.Now().Unix() > reset.Expiresat {
		span.SetStatus(codes.Error, "expired reset code")
		return ErrInvalidResetCode
	}

	err = txqry.DeleteResetCodesForUser(ctx, row.ID)
	if err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to hash password")
		return err
	}
	err = txqry.UpdatePasswordHash(ctx, db.UpdatePasswordHashParams{
		Passwordhash: hash,
		ID:           row.ID,
	})
	if err != nil {
		return err
	}

	return tx.Commit()
}
