package webui

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"pricewise-backend/lib/telemetry"
	"pricewise-backend/services/accounts"
	"pricewise-backend/services/search"
	"strings"
)

var tracer = telemetry.Tracer("pricewise.services.webui")

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const sessionCookie = "pricewise_session"

type Service struct {
	search   search.Service
	accounts accounts.Service
}

func NewService(searchService search.Service, accountsService accounts.Service) Service {
	return Service{
		search:   searchService,
		accounts: accountsService,
	}
}

func (s Service) Register(mux *http.ServeMux) {
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /account", s.handleAccount)
	mux.HandleFunc("GET /reset", s.handleResetPage)
	mux.HandleFunc("POST /reset", s.handleReset)
}

// everything any page template may want, unused fields stay zero
type pageData struct {
	User        *accounts.User
	Error       string
	Message     string
	Product     string
	SortOrder   string
	Results     []search.Result
	Suggestions []accounts.Suggestion
	History     []accounts.HistoryEntry
}

func (s Service) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	err := pages.ExecuteTemplate(w, name, data)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to render page", "page", name, "err", err)
	}
}

func (s Service) currentUser(r *http.Request) *accounts.User {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	user, err := s.accounts.VerifyToken(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return &user
}

func (s Service) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index.html", pageData{User: s.currentUser(r)})
}

func (s Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleSearch")
	defer span.End()

	product := r.FormValue("product")
	sortOrder := r.FormValue("sort")
	user := s.currentUser(r)

	results, err := s.search.Search(ctx, product, sortOrder)
	if err != nil {
		s.render(w, r, "index.html", pageData{
			User:    user,
			Product: product,
			Error:   "Failed to fetch results",
		})
		return
	}

	data := pageData{
		User:      user,
		Product:   product,
		SortOrder: sortOrder,
		Results:   results,
	}

	if user != nil && strings.TrimSpace(product) != "" {
		err = s.accounts.AppendHistory(ctx, user.ID, product)
		if err != nil {
			// history is best-effort, the results page still renders
			slog.ErrorContext(ctx, "failed to append search history", "err", err)
		}
		suggestions, err := s.accounts.SuggestQueries(ctx, user.ID, product, 3)
		if err != nil {
			slog.ErrorContext(ctx, "failed to fetch query suggestions", "err", err)
		} else {
			data.Suggestions = suggestions
		}
	}

	s.render(w, r, "results.html", data)
}

func (s Service) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", pageData{User: s.currentUser(r)})
}

func (s Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleRegister")
	defer span.End()

	_, err := s.accounts.CreateUser(
		ctx,
		r.FormValue("username"),
		r.FormValue("email"),
		r.FormValue("password"),
	)
	if errors.Is(err, accounts.ErrUserExists) {
		s.render(w, r, "register.html", pageData{Error: err.Error()})
		return
	}
	if err != nil {
		s.render(w, r, "register.html", pageData{Error: "Failed to create account"})
		return
	}

	token, err := s.accounts.Login(ctx, r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s Service) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", pageData{User: s.currentUser(r)})
}

func (s Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleLogin")
	defer span.End()

	token, err := s.accounts.Login(ctx, r.FormValue("username"), r.FormValue("password"))
	if errors.Is(err, accounts.ErrInvalidLogin) {
		s.render(w, r, "login.html", pageData{Error: err.Error()})
		return
	}
	if err != nil {
		s.render(w, r, "login.html", pageData{Error: "Failed to log in"})
		return
	}
	setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleLogout")
	defer span.End()

	cookie, err := r.Cookie(sessionCookie)
	if err == nil {
		err = s.accounts.Logout(ctx, cookie.Value)
		if err != nil {
			slog.ErrorContext(ctx, "failed to delete session", "err", err)
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s Service) handleAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleAccount")
	defer span.End()

	user := s.currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	history, err := s.accounts.ListHistory(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list search history", "err", err)
	}
	s.render(w, r, "account.html", pageData{
		User:    user,
		History: history,
	})
}

func (s Service) handleResetPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "reset.html", pageData{User: s.currentUser(r)})
}

func (s Service) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleReset")
	defer span.End()

	switch r.FormValue("step") {
	case "start":
		err := s.accounts.StartReset(ctx, r.FormValue("email"))
		if err != nil {
			s.render(w, r, "reset.html", pageData{Error: err.Error()})
			return
		}
		s.render(w, r, "reset.html", pageData{Message: "A reset code has been sent to your email."})
	case "consume":
		err := s.accounts.ConsumeReset(
			ctx,
			r.FormValue("email"),
			r.FormValue("code"),
			r.FormValue("password"),
		)
		if err != nil {
			s.render(w, r, "reset.html", pageData{Error: err.Error()})
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	default:
		http.Error(w, "unknown reset step", http.StatusBadRequest)
	}
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
