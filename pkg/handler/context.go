package handler

// DI for all handlers alike.

import (
	"github.com/yumyai/prophagestat/pkg/handler/request"
	"github.com/yumyai/prophagestat/pkg/model"
)

// AppContext is shared read-only by every request.
type AppContext struct {
	Dataset  *model.Dataset
	Sources  []model.SourceRule
	Defaults request.IntervalDefaults
}
