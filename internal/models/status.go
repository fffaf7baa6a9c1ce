// status.go
//
// huntdeck - job application tracking service and client
// Copyright (c) 2026 the huntdeck authors
//
// This file is part of huntdeck.
// huntdeck is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// huntdeck is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.

package models

// Status is the pipeline stage of a job application. There is no
// enforced transition graph: any status may follow any other via
// direct user action.
type Status string

const (
	StatusApplied       Status = "applied"
	StatusPhoneScreen   Status = "phone_screen"
	StatusTechnicalTask Status = "technical_task"
	StatusInterviewing  Status = "interviewing"
	StatusOffer         Status = "offer"
	StatusAccepted      Status = "accepted"
	StatusRejected      Status = "rejected"
	StatusGhosted       Status = "ghosted"
)

// AllStatuses lists every status in board-column order.
var AllStatuses = []Status{
	StatusApplied,
	StatusPhoneScreen,
	StatusTechnicalTask,
	StatusInterviewing,
	StatusOffer,
	StatusAccepted,
	StatusRejected,
	StatusGhosted,
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Priority is the user-assigned importance of an application.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Tier is the user-assigned ranking of a target company.
type Tier string

const (
	Tier1 Tier = "tier1"
	Tier2 Tier = "tier2"
	Tier3 Tier = "tier3"
)
