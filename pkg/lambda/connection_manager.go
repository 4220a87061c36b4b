package lambda

import (
	"context"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"customers-api/internal/config"
	"customers-api/pkg/server"
)

// ConnectionManager keeps the container and router alive across warm
// invocations of a Lambda function
type ConnectionManager struct {
	mu        sync.Mutex
	container *server.Container
	handler   *Handler
	loadCfg   func() (*config.Config, error)
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(config.GetOptimizedConfig)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager that loads its configuration with loadCfg
func NewConnectionManager(loadCfg func() (*config.Config, error)) *ConnectionManager {
	return &ConnectionManager{loadCfg: loadCfg}
}

// GetHandler returns the event handler, connecting to the store on first
// use. A failed initialisation is retried on the next call.
func (cm *ConnectionManager) GetHandler(ctx context.Context) (*Handler, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.handler != nil {
		return cm.handler, nil
	}

	cfg, err := cm.loadCfg()
	if err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	container, err := server.NewContainer(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}

	container.Logger.WithFields(logrus.Fields{
		"driver":          cfg.Database.Driver,
		"deployment_mode": config.GetDeploymentMode(),
	}).Info("Lambda container initialised")

	cm.container = container
	cm.handler = NewHandler(server.NewRouter(container))
	return cm.handler, nil
}

// Handle serves one API Gateway event
func (cm *ConnectionManager) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	handler, err := cm.GetHandler(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialise Lambda container")
		return errorResponse(http.StatusServiceUnavailable, "unhealthy"), nil
	}

	return handler.Handle(ctx, event)
}

// Cleanup closes the store and forgets the container
func (cm *ConnectionManager) Cleanup(ctx context.Context) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(ctx); err != nil {
			return err
		}
		cm.container = nil
	}

	cm.handler = nil
	return nil
}

// Shutdown releases the store when the runtime signals SIGTERM
func (cm *ConnectionManager) Shutdown() {
	if err := cm.Cleanup(context.Background()); err != nil {
		logrus.WithError(err).Error("Failed to close Lambda container")
		return
	}
	logrus.Info("Lambda container closed")
}
