package model

// WebhookEvent is one parsed content-change notification from the CMS.
// The raw request bytes it was decoded from are only held long enough to
// verify the signature; they are not retained here.
type WebhookEvent struct {
	Type     string          `json:"type"`
	Action   string          `json:"action"`
	Document WebhookDocument `json:"document"`
}

// WebhookDocument is the changed document. The CMS sends the full document;
// only the identifier matters for dispatching.
type WebhookDocument struct {
	ID string `json:"_id"`
}
