package domain

type CtxKey string

const (
	KeySessionID CtxKey = "SessionID"
	KeyRequestID CtxKey = "RequestID"
)
