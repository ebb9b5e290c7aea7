package get_occupancy_detail

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/occupancy/models"
)

type OccupancyService interface {
	Detail(ctx context.Context, req *models.DetailRequest) (*models.DetailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
