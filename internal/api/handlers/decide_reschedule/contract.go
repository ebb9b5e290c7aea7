package decide_reschedule

import (
	"context"

	decideReschedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/decide_reschedule"
)

type DecideRescheduleUseCase interface {
	Execute(ctx context.Context, req *decideReschedule.Request) (*decideReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
