package tasks

import (
	"encoding/json"

	"roamly/models"

	"github.com/hibiken/asynq"
)

const TypeCancellationRequested = "cancellation:requested"

func NewCancellationRequestedTask(notice models.CancellationNotice) (*asynq.Task, error) {
	b, err := json.Marshal(notice)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCancellationRequested, b), nil
}
