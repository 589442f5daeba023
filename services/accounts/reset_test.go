package accounts

import (
	"context"
	"io"
	"log"
	"pricewise-backend/lib/testutil"
	"pricewise-backend/services/accounts/db"
	"regexp"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "modernc.org/sqlite"
)

// the code sits alone on its own line of the email body
var codeRegex = regexp.MustCompile(`(?m)^\s*([a-zA-Z0-9]{8})\s*$`)

func setupWithSmtp(t testing.TB) (Service, func()) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/accounts",
		DbSchema: db.Schema,
	})

	// suppress logging
	testcontainers.Logger = log.New(io.Discard, "", 0)

	smtpContainer, err := testcontainers.GenericContainer(
		context.Background(),
		testcontainers.GenericContainerRequest{
			Started: true,
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "haravich/fake-smtp-server",
				ExposedPorts: []string{"1025:1025", "1090:1080"},
				WaitingFor:   wait.ForLog("smtp://0.0.0.0:1025"),
			},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	service := NewService(res.DB, Options{
		Smtp: SmtpConfig{
			Server:       "localhost",
			Port:         1025,
			EmailAddress: "noreply@pricewise.in",
			Password:     "default",
		},
	})

	return service, func() {
		cleanup()
		err := smtpContainer.Terminate(context.Background())
		if err != nil {
			t.Fatal(err)
		}
	}
}

var globalClient = resty.New()

func getResetCodeFromEmail(t testing.TB) string {
	res, err := globalClient.R().
		Get("http://127.0.0.1:1090/messages/1.plain")
	if err != nil {
		t.Fatal(err)
	}
	match := codeRegex.FindStringSubmatch(res.String())
	if match == nil {
		t.Fatal("no reset code found in delivered email")
	}
	return match[1]
}

func TestPasswordResetFlow(t *testing.T) {
	service, cleanup := setupWithSmtp(t)
	defer cleanup()

	ctx := context.Background()

	_, err := service.CreateUser(ctx, "frank", "frank@email.com", "old-password")
	if err != nil {
		t.Fatal(err)
	}

	err = service.StartReset(ctx, "nobody@email.com")
	require.ErrorIs(t, err, ErrUnknownEmail)

	err = service.StartReset(ctx, "frank@email.com")
	if err != nil {
		t.Fatal(err)
	}
	code := getResetCodeFromEmail(t)
	require.NotEmpty(t, code)

	err = service.ConsumeReset(ctx, "frank@email.com", "wrong-code", "new-password")
	require.ErrorIs(t, err, ErrInvalidResetCode)

	err = service.ConsumeReset(ctx, "frank@email.com", code, "new-password")
	if err != nil {
		t.Fatal(err)
	}

	// codes are single use
	err = service.ConsumeReset(ctx, "frank@email.com", code, "another-password")
	require.ErrorIs(t, err, ErrInvalidResetCode)

	_, err = service.Login(ctx, "frank", "old-password")
	require.ErrorIs(t, err, ErrInvalidLogin)
	token, err := service.Login(ctx, "frank", "new-password")
	if err != nil {
		t.Fatal(err)
	}
	require.NotEmpty(t, token)
}
