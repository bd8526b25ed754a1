package core

// Cache keys for the session enrichment cache-aside reads. Stable urn
// form keyed by entity kind + user id; user snapshot and role set are
// cached under separate keys.

func UserCacheKey(id string) string { return "urn:user:" + id }

func RolesCacheKey(id string) string { return "urn:roles:" + id }
