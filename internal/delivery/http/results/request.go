package results

import (
	"errors"
	"strconv"
)

var errInvalidOrderID = errors.New("invalid order id")

type ResultByOrderIDRequest struct {
	OrderID string
}

func (r *ResultByOrderIDRequest) validate() error {
	id, err := strconv.ParseInt(r.OrderID, 10, 64)
	if err != nil || id <= 0 {
		return errInvalidOrderID
	}

	return nil
}

func (r *ResultByOrderIDRequest) toServiceRepresentation() int64 {
	id, _ := strconv.ParseInt(r.OrderID, 10, 64)

	return id
}
