package interaction

import (
	"encoding/json"

	"github.com/google/uuid"
)

// NewExecuteRun builds an Execute interaction for a fresh workflow run,
// minting a v4 UUID as the workflow ID. Gateways start runs this way when
// the caller has no ID of its own to pin.
func NewExecuteRun(namespace, taskQueue, workflowType string, args []json.RawMessage) *Interaction {
	return NewExecute(Execute{
		Namespace:    namespace,
		TaskQueue:    taskQueue,
		WorkflowID:   uuid.NewString(),
		WorkflowType: workflowType,
		Args:         args,
	})
}
