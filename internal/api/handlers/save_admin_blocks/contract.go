package save_admin_blocks

import (
	"context"

	saveAdminBlocks "github.com/m04kA/SMC-AppointmentService/internal/usecase/save_admin_blocks"
)

type SaveAdminBlocksUseCase interface {
	Execute(ctx context.Context, req *saveAdminBlocks.Request) (*saveAdminBlocks.Summary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
