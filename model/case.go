package model

// CaseSummary is one entry of the upstream v1 case list. Field names mirror
// the upstream contract, which uses NBIS naming.
type CaseSummary struct {
	NBISCaseID        string `json:"NBISCaseID"`
	DISAStatus        string `json:"DISAStatus"`
	SubjectID         string `json:"SubjectID"`
	CreateDateTime    string `json:"pxCreateDateTime"`
	UpdateDateTime    string `json:"pxUpdateDateTime"`
	SFArchivalPDFExist string `json:"SFArchivalPDFExist"`
}

// CaseListMetadata carries the upstream case count. The upstream always sets
// it to len(cases), so it is echoed rather than trusted.
type CaseListMetadata struct {
	TotalCases int `json:"totalCases"`
}

// CaseList is the upstream response for a subject's cases.
type CaseList struct {
	Cases    []CaseSummary    `json:"cases"`
	Metadata CaseListMetadata `json:"metadata"`
}

// CaseDetails is the deep work-item record returned by the upstream details
// call. Its internal shape churns with upstream releases, so it is carried as
// an opaque document and forwarded verbatim.
type CaseDetails map[string]any

// CaseHistoryEntry is one audit line of a case's history.
type CaseHistoryEntry struct {
	Time        string `json:"Time"`
	Description string `json:"Description"`
	PerformedBy string `json:"PerformedBy"`
}

// CaseHistory is the upstream history response, in upstream order.
type CaseHistory struct {
	NBISCaseID string             `json:"NBISCaseID"`
	History    []CaseHistoryEntry `json:"History"`
}

// CombinedCaseView is the aggregated response for the case-history flow:
// the subject's full case list plus details and history of the selected case.
type CombinedCaseView struct {
	CasesList      *CaseList    `json:"casesList"`
	CaseDetails    CaseDetails  `json:"caseDetails"`
	CaseHistory    *CaseHistory `json:"caseHistory"`
	SelectedCaseID string       `json:"selectedCaseId"`
}

// CaseDetailsAndHistory is the aggregated response for a known case id.
type CaseDetailsAndHistory struct {
	CaseID      string       `json:"caseId"`
	CaseDetails CaseDetails  `json:"caseDetails"`
	CaseHistory *CaseHistory `json:"caseHistory"`
}
