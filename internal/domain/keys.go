package domain

type CtxKey string

// KeyLocale holds the resolved Locale in a request context.
const KeyLocale CtxKey = "Locale"
