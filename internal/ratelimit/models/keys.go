package models

// ClientKey identifies the bucket of an API client.
func ClientKey(clientID string) string {
	return "client:" + clientID
}

// SubjectKey identifies the bucket of a token subject without a client ID.
func SubjectKey(subject string) string {
	return "subject:" + subject
}

// IPKey identifies the bucket of an anonymous caller.
func IPKey(ip string) string {
	return "ip:" + ip
}
