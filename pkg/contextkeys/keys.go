package contextkeys

type contextKey string

// ReviewerIDKey — id проверяющего, положенный в контекст auth-middleware.
const ReviewerIDKey contextKey = "reviewerID"
