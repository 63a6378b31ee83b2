package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/smartward/hospital-backend/internal/appointment"
	"github.com/smartward/hospital-backend/internal/identity"
	"github.com/smartward/hospital-backend/internal/patient"
	"github.com/smartward/hospital-backend/internal/visit"
)

type RouterConfig struct {
	Identity     *identity.Service
	Patients     *patient.Service
	Appointments *appointment.Service
	Visits       *visit.Service
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Post("/auth/login", loginHandler(cfg.Identity))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Identity))

		// Profile, any authenticated staff member.
		r.Get("/profile", getProfileHandler(cfg.Identity))
		r.Put("/profile", updateProfileHandler(cfg.Identity))
		r.Put("/profile/password", changePasswordHandler(cfg.Identity))

		// Account and shift administration.
		r.With(RequireRoles(identity.RoleAdmin)).
			Post("/auth/register", registerHandler(cfg.Identity))
		r.With(RequireRoles(identity.RoleAdmin)).
			Post("/shifts", createShiftHandler(cfg.Appointments))
		r.With(RequireRoles(identity.RoleReceptionist, identity.RoleAdmin)).
			Get("/shifts", listShiftsHandler(cfg.Appointments))
		r.With(RequireRoles(identity.RoleReceptionist, identity.RoleAdmin)).
			Get("/doctors", listDoctorsHandler(cfg.Identity))

		// Doctor's own view.
		r.Group(func(r chi.Router) {
			r.Use(RequireRoles(identity.RoleDoctor))
			r.Get("/my/shifts", myShiftsHandler(cfg.Appointments))
			r.Get("/my/appointments", myAppointmentsHandler(cfg.Appointments))
			r.Get("/my/visits", myVisitsHandler(cfg.Visits))
			r.Put("/visits/{id}/notes", attachNotesHandler(cfg.Visits))
		})

		// Slot management.
		r.Group(func(r chi.Router) {
			r.Use(RequireRoles(identity.RoleReceptionist, identity.RoleAdmin))
			r.Post("/slots", createDoctorSlotHandler(cfg.Appointments))
			r.Delete("/slots/{id}", deleteDoctorSlotHandler(cfg.Appointments))
			r.Post("/specialized-slots", createSpecializedSlotHandler(cfg.Appointments))
		})

		// Front desk: booking and patient records.
		r.Group(func(r chi.Router) {
			r.Use(RequireRoles(identity.RoleReceptionist))
			r.Get("/slots/open", listOpenSlotsHandler(cfg.Appointments))
			r.Post("/appointments", bookAppointmentHandler(cfg.Appointments))
			r.Get("/appointments", listUpcomingBookingsHandler(cfg.Appointments))
			r.Delete("/appointments/{id}", cancelBookingHandler(cfg.Appointments))
			r.Get("/specialized-types/{id}/slots/open", listOpenSpecializedSlotsHandler(cfg.Appointments))
			r.Post("/specialized-appointments", bookSpecializedHandler(cfg.Appointments))
			r.Get("/specialized-appointments", listUpcomingSpecializedHandler(cfg.Appointments))
			r.Delete("/specialized-appointments/{id}", cancelSpecializedHandler(cfg.Appointments))
		})

		r.Get("/specialized-types", listSpecializedTypesHandler(cfg.Appointments))
		r.Get("/appointments/{id}/pdf", bookingPDFHandler(cfg.Appointments))
		r.Get("/specialized-appointments/{id}/pdf", specializedPDFHandler(cfg.Appointments))

		r.With(RequireRoles(identity.RoleReceptionist, identity.RoleNurse)).
			Post("/patients", createPatientHandler(cfg.Patients))
		r.Get("/patients", listPatientsHandler(cfg.Patients))
		r.Get("/patients/{id}", getPatientHandler(cfg.Patients))
		r.Put("/patients/{id}", updatePatientHandler(cfg.Patients))

		r.With(RequireRoles(identity.RoleNurse)).
			Post("/patients/{id}/visits", createVisitHandler(cfg.Visits))
	})

	return r
}
