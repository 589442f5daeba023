package accounts

import (
	"context"
	"pricewise-backend/lib/timezone"
	"sync"

	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("pricewise.services.accounts")

var uniqueLoginCounter, _ = meter.Int64Counter("accounts.unique_login_counter")

// guards loggedInToday and todaysDate, Login runs on concurrent
// http handler goroutines
var loginMu sync.Mutex
var loggedInToday = map[string]struct{}{}
var todaysDate = timezone.Now().Day()

func countLogin(ctx context.Context, username string) {
	loginMu.Lock()
	defer loginMu.Unlock()

	if timezone.Now().Day() != todaysDate {
		loggedInToday = map[string]struct{}{}
		todaysDate = timezone.Now().Day()
	}
	_, alreadyLoggedIn := loggedInToday[username]
	if alreadyLoggedIn {
		return
	}
	uniqueLoginCounter.Add(ctx, 1)
	loggedInToday[username] = struct{}{}
}
