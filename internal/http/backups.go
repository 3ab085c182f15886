package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
	"github.com/webghor/hostpanel/internal/tasks"
)

// BackupStore is the manager surface the backups controller needs.
type BackupStore interface {
	Backup(ctx context.Context, backupType string) database.Result[string]
	GetBackupHistory(ctx context.Context) database.Result[[]entities.BackupLog]
}

// TaskEnqueuer queues work for background execution.
type TaskEnqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

type BackupsController struct {
	store    BackupStore
	enqueuer TaskEnqueuer
}

// NewBackupsController creates the controller. enqueuer may be nil, in
// which case backups run inline on the request goroutine.
func NewBackupsController(store BackupStore, enqueuer TaskEnqueuer) *BackupsController {
	return &BackupsController{store: store, enqueuer: enqueuer}
}

// Run triggers a manual backup. With a task queue attached the work is
// queued and 202 returned; otherwise the dump is produced inline and the
// SQL text returned in the envelope.
func (controller *BackupsController) Run(c *gin.Context) {
	if controller.enqueuer != nil {
		ids, err := controller.enqueuer.Add(tasks.BackupTask{BackupType: "manual"}).Save()
		if err != nil {
			c.IndentedJSON(http.StatusInternalServerError, database.Result[any]{Success: false, Error: err.Error()})
			return
		}
		c.IndentedJSON(http.StatusAccepted, database.OkMsg(ids, "Backup queued"))
		return
	}
	respondResult(c, controller.store.Backup(c.Request.Context(), "manual"))
}

func (controller *BackupsController) History(c *gin.Context) {
	respondResult(c, controller.store.GetBackupHistory(c.Request.Context()))
}
