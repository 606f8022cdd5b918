package health

// ModelCheck reports the class invariants. Any error-severity finding makes
// the model unhealthy; warnings alone degrade it.
func ModelCheck(count func() (classes, errors, warnings int)) CheckFunc {
	return func() Check {
		classes, errs, warnings := count()
		check := Check{
			Name: "model",
			Details: map[string]any{
				"classes":  classes,
				"errors":   errs,
				"warnings": warnings,
			},
		}

		switch {
		case errs > 0:
			check.Status = StatusUnhealthy
			check.Message = "Class invariants violated"
		case warnings > 0:
			check.Status = StatusDegraded
			check.Message = "Model has warnings"
		default:
			check.Status = StatusHealthy
			check.Message = "Model consistent"
		}
		return check
	}
}

// EventsCheck reports change notifications dropped on full subscriber
// buffers. A dropped notification leaves a view stale until the next change.
func EventsCheck(dropped func() uint64) CheckFunc {
	return func() Check {
		n := dropped()
		check := Check{
			Name:    "events",
			Details: map[string]any{"dropped": n},
		}
		if n > 0 {
			check.Status = StatusDegraded
			check.Message = "Notifications dropped"
		} else {
			check.Status = StatusHealthy
			check.Message = "All notifications delivered"
		}
		return check
	}
}
