package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Auth           *AuthHandler
	Users          *UserHandler
	Rooms          *RoomHandler
	Brands         *BrandHandler
	BrandSchedules *BrandScheduleHandler
	Availability   *AvailabilityHandler
	Assignments    *AssignmentHandler
	Matching       *MatchingHandler

	// RequireSession guards every route except signup, login, and the
	// health check.
	RequireSession func(http.Handler) http.Handler
	// Middleware wraps the whole router, outermost first.
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	protected := http.NewServeMux()

	if cfg.Auth != nil {
		protected.HandleFunc("/sessions/current", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPut:
				cfg.Auth.RefreshSession(w, r)
			case http.MethodDelete:
				cfg.Auth.DeleteCurrentSession(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
		protected.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.URL.Path, "/sessions/")
			if token == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Auth.DeleteSession(w, r, token)
		})
	}

	if cfg.Users != nil {
		registerCollection(protected, "/users", collectionRoutes{
			list:   cfg.Users.List,
			create: cfg.Users.Create,
			get:    cfg.Users.Get,
			update: cfg.Users.Update,
			delete: cfg.Users.Delete,
		})
	}

	if cfg.Rooms != nil {
		registerCollection(protected, "/rooms", collectionRoutes{
			list:   cfg.Rooms.List,
			create: cfg.Rooms.Create,
			get:    cfg.Rooms.Get,
			update: cfg.Rooms.Update,
			delete: cfg.Rooms.Delete,
		})
	}

	if cfg.Brands != nil {
		registerCollection(protected, "/brands", collectionRoutes{
			list:   cfg.Brands.List,
			create: cfg.Brands.Create,
			get:    cfg.Brands.Get,
			update: cfg.Brands.Update,
			delete: cfg.Brands.Delete,
		})
	}

	if cfg.BrandSchedules != nil {
		registerCollection(protected, "/brand-schedules", collectionRoutes{
			list:   cfg.BrandSchedules.List,
			create: cfg.BrandSchedules.Create,
			get:    cfg.BrandSchedules.Get,
			update: cfg.BrandSchedules.Update,
			delete: cfg.BrandSchedules.Delete,
		})
	}

	if cfg.Availability != nil {
		protected.HandleFunc("/availability", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Availability.List(w, r)
			case http.MethodPost:
				cfg.Availability.Submit(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		protected.HandleFunc("/availability/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/availability/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Availability.Delete(w, r.WithContext(ContextWithResourceID(r.Context(), id)))
		})
		protected.HandleFunc("/host-schedule-stats", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Availability.Stats(w, r)
		})
	}

	if cfg.Assignments != nil {
		protected.HandleFunc("/room-assignments", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Assignments.List(w, r)
			case http.MethodPost:
				cfg.Assignments.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		protected.HandleFunc("/room-assignments/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/room-assignments/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch r.Method {
			case http.MethodGet:
				cfg.Assignments.Get(w, r)
			case http.MethodDelete:
				cfg.Assignments.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodDelete)
			}
		})
		protected.HandleFunc("/validate-room-assignment", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Assignments.Validate(w, r)
		})
		protected.HandleFunc("/my-rooms", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Assignments.MyRooms(w, r)
		})
	}

	if cfg.Matching != nil {
		protected.HandleFunc("/get-available-hosts", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Matching.AvailableHosts(w, r)
		})
		protected.HandleFunc("/room-availability/", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Matching.RoomAvailability(w, r, strings.TrimPrefix(r.URL.Path, "/room-availability/"))
		})
		protected.HandleFunc("/match-brand-schedule", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Matching.MatchBrandSchedule(w, r)
		})
	}

	var protectedChain http.Handler = protected
	if cfg.RequireSession != nil {
		protectedChain = cfg.RequireSession(protected)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.Auth != nil {
		mux.HandleFunc("/signup", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Signup(w, r)
		})
		mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.CreateSession(w, r)
		})
	}
	mux.Handle("/", protectedChain)

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}

type collectionRoutes struct {
	list   http.HandlerFunc
	create http.HandlerFunc
	get    http.HandlerFunc
	update http.HandlerFunc
	delete http.HandlerFunc
}

func registerCollection(mux *http.ServeMux, base string, routes collectionRoutes) {
	mux.HandleFunc(base, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			routes.list(w, r)
		case http.MethodPost:
			routes.create(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})
	mux.HandleFunc(base+"/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, base+"/")
		if id == "" {
			http.NotFound(w, r)
			return
		}
		r = r.WithContext(ContextWithResourceID(r.Context(), id))
		switch r.Method {
		case http.MethodGet:
			routes.get(w, r)
		case http.MethodPut:
			routes.update(w, r)
		case http.MethodDelete:
			routes.delete(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
		}
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
