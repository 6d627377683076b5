package ats

// industryKeywords is the keyword dictionary, grouped by kind. Group order and
// keyword order define extraction order.
var industryKeywords = [][]string{
	// technical
	{
		"javascript", "typescript", "react", "node.js", "python", "java", "sql",
		"aws", "docker", "kubernetes", "git", "api", "database", "html", "css",
		"angular", "vue", "mongodb", "postgresql", "redis", "graphql", "rest",
	},
	// management
	{
		"leadership", "project management", "team lead", "scrum", "agile", "budgeting",
		"strategic planning", "stakeholder management", "cross-functional", "mentoring",
	},
	// business
	{
		"analysis", "strategy", "consulting", "requirements", "process improvement",
		"roi", "kpi", "metrics", "business intelligence", "data analysis",
	},
	// communication
	{
		"presentation", "written communication", "verbal communication", "documentation",
		"training", "collaboration", "client relations", "public speaking",
	},
}

// keywordPhrases are multi-word terms counted as keywords but not as skills.
var keywordPhrases = []string{
	"project management", "data analysis", "business intelligence",
	"machine learning", "artificial intelligence", "web development",
	"software development", "full stack", "front end", "back end",
}

// skillVariant maps spellings of a skill to its canonical dictionary keyword.
type skillVariant struct {
	canonical string
	variants  []string
}

var skillHierarchy = []skillVariant{
	{"javascript", []string{"js", "es6", "es2015", "ecmascript"}},
	{"typescript", []string{"ts"}},
	{"react", []string{"reactjs", "react.js"}},
	{"node.js", []string{"nodejs", "node"}},
	{"python", []string{"py"}},
	{"database", []string{"db", "databases"}},
	{"sql", []string{"mysql", "postgresql", "sqlite"}},
	{"aws", []string{"amazon web services"}},
	{"api", []string{"rest api", "restful", "graphql"}},
}

// Seniority tiers, checked from most to least senior.
var seniorityLevels = []struct {
	score    int
	keywords []string
}{
	{90, []string{"senior", "lead", "principal", "architect", "director", "manager"}},
	{70, []string{"developer", "engineer", "analyst", "specialist", "coordinator"}},
	{50, []string{"junior", "associate", "intern", "trainee", "entry-level"}},
}

const noSeniorityScore = 30

var educationLevels = []struct {
	degree string
	score  int
}{
	{"phd", 100},
	{"doctorate", 100},
	{"master", 85},
	{"mba", 85},
	{"bachelor", 70},
	{"associate", 50},
	{"certificate", 30},
	{"diploma", 25},
}

var relevantFields = []string{
	"computer science", "engineering", "business", "management",
	"information technology", "data science", "mathematics",
}

var resumeSections = []string{"experience", "education", "skills", "summary", "objective"}

// dictionary is every industry keyword, flattened, for membership tests.
var dictionary = func() map[string]bool {
	m := make(map[string]bool)
	for _, group := range industryKeywords {
		for _, k := range group {
			m[k] = true
		}
	}
	return m
}()
