// Package server exposes widget placements over HTTP: admin form rendering,
// submission handling, front-end display and instance management.
package server

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	widgetform "github.com/goliatone/go-widgetform"
	"github.com/goliatone/go-widgetform/internal/logging"
	"github.com/goliatone/go-widgetform/pkg/host"
	"github.com/goliatone/go-widgetform/pkg/interfaces"
	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/store"
	"github.com/goliatone/go-widgetform/pkg/submission"
	"github.com/goliatone/go-widgetform/pkg/widget"
)

const maxBodyBytes = 1 << 20

// Server serves one widget type backed by a store.
type Server struct {
	widget    *widget.Widget
	store     store.Store
	logger    interfaces.Logger
	sidebarID string
	assetBase string
	version   string
	newNumber func() string
}

// Option customises the server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSidebarID sets the sidebar id passed to the front-end wrapper.
func WithSidebarID(id string) Option {
	return func(s *Server) {
		if id != "" {
			s.sidebarID = id
		}
	}
}

// WithAssets sets the base URL and version used for admin asset bundles.
func WithAssets(baseURL, version string) Option {
	return func(s *Server) {
		s.assetBase = baseURL
		s.version = version
	}
}

// WithNumberGenerator overrides how new placement numbers are allocated.
func WithNumberGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newNumber = fn
		}
	}
}

// New constructs a server for w persisting through st.
func New(w *widget.Widget, st store.Store, options ...Option) *Server {
	s := &Server{
		widget:    w,
		store:     st,
		logger:    logging.NoOp(),
		sidebarID: "sidebar-1",
		assetBase: "/assets/",
		newNumber: uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(s.loggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(widgetform.AssetsFS())))
	r.Get("/timeslots", s.timeSlots)
	r.Route("/widgets", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Route("/{number}", func(r chi.Router) {
			r.Get("/", s.display)
			r.Delete("/", s.delete)
			r.Get("/form", s.form)
			r.Post("/form", s.update)
			r.Get("/assets", s.assets)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.listen", "addr", addr, "widget", s.widget.IDBase())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("server.shutdown")
		return httpServer.Shutdown(shutdownCtx)
	}
}

type placementResponse struct {
	Number   string         `json:"number"`
	Instance model.Instance `json:"instance"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	numbers, err := s.store.List(r.Context(), s.widget.IDBase())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeSuccess(w, r, http.StatusOK, map[string]any{
		"widget":  s.widget.IDBase(),
		"numbers": numbers,
	})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	number := s.newNumber()
	placement := s.widget.ForPlacement(number)

	submitted, err := readSubmission(w, r, placement.Naming(), true)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	instance := placement.Update(submitted, model.NewInstance())
	if err := s.store.Save(r.Context(), placement.IDBase(), number, instance); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeSuccess(w, r, http.StatusCreated, placementResponse{Number: number, Instance: instance})
}

func (s *Server) display(w http.ResponseWriter, r *http.Request) {
	placement, instance, err := s.load(r, false)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	widgetID := placement.IDBase() + "-" + placement.Number()
	markup, err := placement.Display(host.DefaultWrapperArgs(s.sidebarID, widgetID), instance)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if markup == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeHTML(w, http.StatusOK, markup)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if err := s.store.Delete(r.Context(), s.widget.IDBase(), number); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) form(w http.ResponseWriter, r *http.Request) {
	placement, instance, err := s.load(r, true)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	markup, err := placement.Form(instance)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeHTML(w, http.StatusOK, markup)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	placement, old, err := s.load(r, true)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	submitted, err := readSubmission(w, r, placement.Naming(), false)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	instance := placement.Update(submitted, old)
	if err := s.store.Save(r.Context(), placement.IDBase(), placement.Number(), instance); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeSuccess(w, r, http.StatusOK, placementResponse{Number: placement.Number(), Instance: instance})
}

func (s *Server) assets(w http.ResponseWriter, r *http.Request) {
	placement, instance, err := s.load(r, true)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	suffix := ".min"
	if r.URL.Query().Get("debug") != "" {
		suffix = ""
	}
	s.writeSuccess(w, r, http.StatusOK, placement.AdminAssets(instance, s.assetBase, s.version, suffix))
}

func (s *Server) timeSlots(w http.ResponseWriter, r *http.Request) {
	s.writeSuccess(w, r, http.StatusOK, s.widget.TimeSlots())
}

// load resolves the placement named in the URL and its stored instance.
// When allowMissing is set an unknown placement yields a fresh instance.
func (s *Server) load(r *http.Request, allowMissing bool) (*widget.Widget, model.Instance, error) {
	number := chi.URLParam(r, "number")
	placement := s.widget.ForPlacement(number)

	instance, err := s.store.Get(r.Context(), placement.IDBase(), number)
	if errors.Is(err, store.ErrInstanceNotFound) && allowMissing {
		return placement, model.NewInstance(), nil
	}
	if err != nil {
		return nil, model.Instance{}, err
	}
	return placement, instance, nil
}

// readSubmission decodes a JSON or urlencoded request body. With anyNumber
// set, form fields posted under any placement number of the widget are read.
func readSubmission(w http.ResponseWriter, r *http.Request, naming host.WidgetNaming, anyNumber bool) (submission.Submission, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return submission.Submission{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "read request body").
			WithTextCode("REQUEST_BODY_UNREADABLE")
	}
	if len(body) == 0 {
		return submission.Submission{}, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var submitted submission.Submission
		if err := submitted.UnmarshalJSON(body); err != nil {
			return submission.Submission{}, err
		}
		return submitted, nil
	}
	if anyNumber {
		if number, ok := submission.FormNumber(string(body), naming.IDBase); ok {
			naming.Number = number
		}
	}
	return submission.ParseForm(string(body), naming)
}
