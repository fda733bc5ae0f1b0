package web

import (
	"log/slog"
	"strconv"

	"github.com/flowlint/flowlint/pkg/autofix"
	"github.com/flowlint/flowlint/pkg/expression"
	"github.com/flowlint/flowlint/pkg/nodeconfig"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/flowlint/flowlint/pkg/suggest"
	"github.com/flowlint/flowlint/pkg/validator"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// Server wires the validation engine into a fiber application.
type Server struct {
	logger   *slog.Logger
	registry registry.NodeTypes
	validate *govalidator.Validate
}

func NewServer(logger *slog.Logger, reg registry.NodeTypes) *Server {
	return &Server{
		logger:   logger,
		registry: reg,
		validate: govalidator.New(govalidator.WithRequiredStructEnabled()),
	}
}

func (s *Server) App() *fiber.App {
	checker := expression.NewFormatChecker()
	config := nodeconfig.NewValidator(
		s.registry,
		suggest.NewResourceService(s.registry, s.logger),
		suggest.NewOperationService(s.registry, s.logger),
		s.logger,
	)
	engine := validator.New(
		s.registry,
		config,
		suggest.NewNodeTypeService(s.registry, s.logger),
		checker,
		s.logger,
	)
	fixer := autofix.New(s.registry, s.logger)

	handlers := NewAPIHandlers(engine, fixer, s.registry, checker, s.validate, s.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Flowlint API")
	})

	w := app.Group("/workflows")
	w.Post("/validate", handlers.ValidateWorkflow)
	w.Post("/fix", handlers.FixWorkflow)

	app.Get("/node-types", handlers.GetNodeTypes)
	app.Get("/node-types/*", handlers.GetNodeType)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (s *Server) Start(port int) error {
	app := s.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
