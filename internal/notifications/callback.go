// Package notifications formats and sends every outbound Telegram message of
// the engine and decodes the callback payloads that come back. Sending is
// best-effort: a failed send is logged and never blocks or reverts the state
// change that triggered it.
package notifications

import (
	"fmt"
	"strconv"
	"strings"

	"boutique/internal/pkg/errs"
)

// Action names one button press a chat member can send back.
type Action string

// Callback actions understood by the webhook.
const (
	ActionApprove  Action = "approve"
	ActionBlock    Action = "block"
	ActionStart    Action = "start"
	ActionEta      Action = "eta"
	ActionContact  Action = "contact"
	ActionEndChat  Action = "endchat"
	ActionComplete Action = "complete"
	ActionRefuse   Action = "refuse"
	ActionQueue    Action = "queue"
)

func validActions() map[Action]bool {
	return map[Action]bool{
		ActionApprove:  true,
		ActionBlock:    true,
		ActionStart:    true,
		ActionEta:      true,
		ActionContact:  true,
		ActionEndChat:  true,
		ActionComplete: true,
		ActionRefuse:   true,
		ActionQueue:    true,
	}
}

// Callback is the decoded payload of one inline button. The wire format is
// "action:orderID" with an optional third "param" segment, e.g. "eta:42:30".
type Callback struct {
	Action  Action
	OrderID int64
	Param   string
}

// Encode renders the callback into its wire format.
func (c Callback) Encode() string {
	if c.Param != "" {
		return fmt.Sprintf("%s:%d:%s", c.Action, c.OrderID, c.Param)
	}
	return fmt.Sprintf("%s:%d", c.Action, c.OrderID)
}

// DecodeCallback parses wire data back into a Callback. Unknown actions,
// missing segments and non-numeric order ids are all rejected.
func DecodeCallback(data string) (Callback, error) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) < 2 {
		return Callback{}, errs.NewValueIsInvalidErrorWithCause("callback", fmt.Errorf("%q has no order id segment", data))
	}

	action := Action(parts[0])
	if !validActions()[action] {
		return Callback{}, errs.NewValueIsInvalidErrorWithCause("callback", fmt.Errorf("%q is not a known action", parts[0]))
	}

	orderID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || orderID <= 0 {
		return Callback{}, errs.NewValueIsInvalidErrorWithCause("callback", fmt.Errorf("%q is not a valid order id", parts[1]))
	}

	cb := Callback{Action: action, OrderID: orderID}
	if len(parts) == 3 {
		cb.Param = parts[2]
	}
	return cb, nil
}
