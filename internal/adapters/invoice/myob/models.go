package myob

// companyFile is one entry of the account list returned by the
// AccountRight root endpoint. Only the request base URI matters here.
type companyFile struct {
	URI string `json:"Uri"`
}

// billListResponse is the envelope of GET {base}/Purchase/Bill.
type billListResponse struct {
	Items []billItem `json:"Items"`
}

// billItem carries the subset of a purchase bill this tool consumes.
// Date arrives as a local timestamp, e.g. "2024-12-04T00:00:00".
type billItem struct {
	UID    string `json:"UID"`
	Number string `json:"Number"`
	Date   string `json:"Date"`
}

// attachmentListResponse is the envelope of
// GET {base}/Purchase/Bill/Service/{UID}/Attachment.
type attachmentListResponse struct {
	Attachments []attachmentItem `json:"Attachments"`
}

// attachmentItem is one attachment record. FileUri is a pre-signed
// object-storage link valid for roughly thirty minutes.
type attachmentItem struct {
	OriginalFileName string `json:"OriginalFileName"`
	FileURI          string `json:"FileUri"`
}
