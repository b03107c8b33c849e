package router

import (
	"context"
	"slices"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/dtroode/neoarcana-server/internal/api/grpc/handler"
	"github.com/dtroode/neoarcana-server/internal/api/grpc/middleware"
	"github.com/dtroode/neoarcana-server/internal/api/grpc/rpc"
	"github.com/dtroode/neoarcana-server/internal/logger"
	"github.com/dtroode/neoarcana-server/internal/model"
)

// Router builds the gRPC server with its middleware chain.
type Router struct {
	readingService      handler.ReadingService
	registrationService handler.RegistrationService
	tokenManager        model.TokenManager
	contextManager      model.ContextManager
	logger              *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	readingService handler.ReadingService,
	registrationService handler.RegistrationService,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		readingService:      readingService,
		registrationService: registrationService,
		tokenManager:        tokenManager,
		contextManager:      contextManager,
		logger:              logger,
	}
}

// requiresAuth reports whether the call needs a session token.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return !slices.Contains(rpc.PublicMethods, c.FullMethod())
}

// Register registers all gRPC services and middleware.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(middleware.RecoveryHandler(r.logger))

	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoveryOpt),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)
	r.registerReadingRoutes(s)

	return s
}

func (r *Router) registerReadingRoutes(server *grpc.Server) {
	readingHandler := handler.NewReadings(r.readingService, r.registrationService, r.contextManager, r.logger)
	rpc.RegisterReadingsServer(server, readingHandler)
}
