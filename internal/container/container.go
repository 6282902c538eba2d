package container

import (
	"github.com/cyclopcam/logs"

	app "cell-finder/internal/application"
	"cell-finder/internal/domain/entity"
	"cell-finder/internal/domain/port"
)

type Container struct {
	UserService      *app.UserService
	DetectionService *app.DetectionService
	Log              logs.Log
}

func New(userRepo port.UserRepository, detector port.CellDetector, frames port.FrameSource, log logs.Log, defaults entity.DetectionParameters) *Container {
	userService := app.NewUserService(userRepo, defaults)
	detectionService := app.NewDetectionService(userService, detector, frames, log)

	return &Container{
		UserService:      userService,
		DetectionService: detectionService,
		Log:              log,
	}
}
