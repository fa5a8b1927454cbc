package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Dipto6969/Police-Positive/api"
	"github.com/Dipto6969/Police-Positive/api/scheduler"
	"github.com/Dipto6969/Police-Positive/config"
	"github.com/Dipto6969/Police-Positive/databases"
)

// App stores the router, handler wiring and db connection
type App struct {
	Router    *mux.Router
	Handler   http.Handler
	Config    config.Config
	dbHelper  databases.DatabaseHelper
	limiter   *api.RateLimiter
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()
	auth := api.Auth{Secret: a.Config.JWTSecret}

	userDB := databases.NewUserDatabase(a.dbHelper)
	complaintDB := databases.NewComplaintDatabase(a.dbHelper)
	evidenceDB := databases.NewEvidenceFileDatabase(a.dbHelper)
	timelineDB := databases.NewTimelineEventDatabase(a.dbHelper)
	notificationDB := databases.NewNotificationDatabase(a.dbHelper)
	alertDB := databases.NewAlertDatabase(a.dbHelper)

	hub := NewNotificationHub()

	au := Auth{DB: userDB, Secret: a.Config.JWTSecret}
	c := Complaint{
		DB:        complaintDB,
		EDB:       evidenceDB,
		TDB:       timelineDB,
		NDB:       notificationDB,
		UDB:       userDB,
		Hub:       hub,
		Mailer:    NewSendGridMailer(a.Config.SendGridAPIKey),
		UploadDir: a.Config.UploadDir,
	}
	n := Notification{DB: notificationDB}
	rep := Report{DB: complaintDB}
	u := User{DB: userDB}
	ch := Chat{APIKey: a.Config.GroqAPIKey}
	nw := News{APIKey: a.Config.NewsAPIKey}
	al := Alert{DB: alertDB}

	r.HandleFunc("/health", healthCheckHandler)
	r.HandleFunc("/ws/notifications", hub.HandleWebSocket)
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.Config.UploadDir))))

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(api.TimeoutMiddleware(30 * time.Second))

	// auth
	apiRouter.HandleFunc("/auth/register", au.RegisterHandler).Methods("POST")
	apiRouter.HandleFunc("/auth/login", au.LoginHandler).Methods("POST")
	apiRouter.Handle("/auth/verify", auth.Middleware(http.HandlerFunc(au.VerifyHandler))).Methods("GET")

	// public tracking, no token required
	apiRouter.HandleFunc("/complaints/track/{case_number}", c.TrackComplaintHandler).Methods("GET")
	apiRouter.HandleFunc("/complaints/track", c.TrackComplaintHandler).Methods("GET")

	// fixed complaint paths must be registered before /complaints/{complaint_id}
	apiRouter.Handle("/complaints/unassigned", auth.Middleware(http.HandlerFunc(c.GetUnassignedComplaintsHandler))).Methods("GET")
	apiRouter.Handle("/complaints/my-civilian", auth.Middleware(http.HandlerFunc(c.GetMyCivilianComplaintsHandler))).Methods("GET")
	apiRouter.Handle("/complaints/my-operator", auth.Middleware(http.HandlerFunc(c.GetMyOperatorComplaintsHandler))).Methods("GET")
	apiRouter.Handle("/complaints/stats", auth.Middleware(http.HandlerFunc(rep.DashboardStatsHandler))).Methods("GET")

	// notifications
	apiRouter.Handle("/complaints/notifications", auth.Middleware(http.HandlerFunc(n.GetNotificationsHandler))).Methods("GET")
	apiRouter.Handle("/complaints/notifications/mark-all-read", auth.Middleware(http.HandlerFunc(n.MarkAllNotificationsAsReadHandler))).Methods("PATCH")
	apiRouter.Handle("/complaints/notifications/{notification_id}/read", auth.Middleware(http.HandlerFunc(n.MarkNotificationAsReadHandler))).Methods("PATCH")

	// reports
	apiRouter.Handle("/complaints/reports/category", auth.Middleware(http.HandlerFunc(rep.ComplaintsByCategoryHandler))).Methods("GET")
	apiRouter.Handle("/complaints/reports/status", auth.Middleware(http.HandlerFunc(rep.ComplaintsByStatusHandler))).Methods("GET")
	apiRouter.Handle("/complaints/reports/priority", auth.Middleware(http.HandlerFunc(rep.ComplaintsByPriorityHandler))).Methods("GET")
	apiRouter.Handle("/complaints/reports/over-time", auth.Middleware(http.HandlerFunc(rep.ComplaintsOverTimeHandler))).Methods("GET")
	apiRouter.Handle("/complaints/reports/officer-performance", auth.Middleware(http.HandlerFunc(rep.OfficerPerformanceHandler))).Methods("GET")
	apiRouter.Handle("/complaints/reports/resolution-time", auth.Middleware(http.HandlerFunc(rep.ResolutionTimeStatsHandler))).Methods("GET")

	// complaint lifecycle
	apiRouter.Handle("/complaints", auth.Middleware(http.HandlerFunc(c.CreateComplaintHandler))).Methods("POST")
	apiRouter.Handle("/complaints", auth.Middleware(http.HandlerFunc(c.GetComplaintsHandler))).Methods("GET")
	apiRouter.Handle("/complaints/{complaint_id}", auth.Middleware(http.HandlerFunc(c.GetComplaintByIDHandler))).Methods("GET")
	apiRouter.Handle("/complaints/{complaint_id}", auth.Middleware(http.HandlerFunc(c.DeleteComplaintHandler))).Methods("DELETE")
	apiRouter.Handle("/complaints/{complaint_id}/status", auth.Middleware(http.HandlerFunc(c.UpdateComplaintStatusHandler))).Methods("PATCH")
	apiRouter.Handle("/complaints/{complaint_id}/assign", auth.Middleware(http.HandlerFunc(c.AssignComplaintHandler))).Methods("PATCH")
	apiRouter.Handle("/complaints/{complaint_id}/notes", auth.Middleware(http.HandlerFunc(c.AddNoteHandler))).Methods("POST")

	// users
	apiRouter.Handle("/users/officers", auth.Middleware(http.HandlerFunc(u.GetOfficersHandler))).Methods("GET")

	// chat assistant
	chatHandler := http.Handler(http.HandlerFunc(ch.ChatHandler))
	if a.limiter != nil {
		chatHandler = a.limiter.Middleware(chatHandler)
	}
	apiRouter.HandleFunc("/chat/prompts", ch.PromptsHandler).Methods("GET")
	apiRouter.HandleFunc("/chat", ch.HealthHandler).Methods("GET")
	apiRouter.Handle("/chat", chatHandler).Methods("POST")

	// news feed
	apiRouter.HandleFunc("/news", nw.GetNewsHandler).Methods("GET")

	// safety alerts
	apiRouter.HandleFunc("/alerts", al.GetActiveAlertsHandler).Methods("GET")
	apiRouter.Handle("/alerts", auth.Middleware(http.HandlerFunc(al.CreateAlertHandler))).Methods("POST")
	apiRouter.Handle("/alerts/{alert_id}/deactivate", auth.Middleware(http.HandlerFunc(al.DeactivateAlertHandler))).Methods("PATCH")

	return r
}

// Initialize connects mongo, prepares the upload directory, wires the
// rate limiter and scheduler and builds the routes.
func (a *App) Initialize() error {
	client, err := databases.NewClient(databases.Conn{
		URL:          a.Config.MongoURI,
		DatabaseName: a.Config.DatabaseName,
	})
	if err != nil {
		return err
	}

	a.dbHelper = databases.NewDatabase(databases.Conn{
		URL:          a.Config.MongoURI,
		DatabaseName: a.Config.DatabaseName,
	}, client)

	if err := client.Connect(); err != nil {
		return err
	}
	zap.S().Info("police-positive db connected successfully")

	if err := os.MkdirAll(a.Config.UploadDir, 0o755); err != nil {
		return err
	}

	if a.Config.RedisURL != "" {
		limiter, err := api.NewRateLimiter(a.Config.RedisURL, 100, 15*time.Minute)
		if err != nil {
			zap.S().Warnw("rate limiter disabled", "error", err)
		} else {
			a.limiter = limiter
		}
	}

	a.scheduler = scheduler.New(databases.NewAlertDatabase(a.dbHelper))
	if err := a.scheduler.Start(); err != nil {
		return err
	}

	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
	a.Handler = cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(a.Router)
}

// healthCheckHandler will return the health of the api, exciting stuff
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"alive": true}`))
}
