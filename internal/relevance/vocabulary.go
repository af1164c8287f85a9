package relevance

// DefaultSkillVocabulary is the fixed keyword list used to pull skills out
// of a job description. Heuristic constants, not an NLP step; injected into
// the ranker so deployments can extend the list without code changes.
var DefaultSkillVocabulary = []string{
	// languages
	"python", "java", "javascript", "typescript", "go", "golang", "ruby",
	"c++", "c#", "rust", "kotlin", "swift", "php", "scala", "sql",
	// platforms and infrastructure
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "linux",
	"react", "angular", "vue", "node", "django", "spring", "rails",
	"postgres", "postgresql", "mysql", "mongodb", "redis", "kafka",
	"elasticsearch", "graphql", "rest", "grpc",
	// methodology and practice terms
	"agile", "scrum", "kanban", "ci/cd", "devops", "tdd", "microservices",
	"machine learning", "data analysis", "leadership", "communication",
	"project management", "mentoring",
}
