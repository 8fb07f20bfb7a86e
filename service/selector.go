package service

import (
	"strings"

	"github.com/kiranjugdar/security-clearance-tracker-api/model"
)

// InProgressStatus is the status literal that makes a case eligible for
// selection when a subject has several.
const InProgressStatus = "In Progress"

// SelectInProgress scans cases in the given order and returns the id of the
// first entry whose status equals InProgressStatus, compared
// case-insensitively. The input order is never changed; when a subject has
// more than one eligible case the first one wins. Returns a NoEligibleCase
// error when the list is empty or nothing matches.
func SelectInProgress(cases []model.CaseSummary) (string, error) {
	for _, c := range cases {
		if strings.EqualFold(c.DISAStatus, InProgressStatus) {
			return c.NBISCaseID, nil
		}
	}
	return "", model.NoEligibleCaseError(InProgressStatus)
}
