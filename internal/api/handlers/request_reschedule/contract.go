package request_reschedule

import (
	"context"

	requestReschedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/request_reschedule"
)

type RequestRescheduleUseCase interface {
	Execute(ctx context.Context, req *requestReschedule.Request) (*requestReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
