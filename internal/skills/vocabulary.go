// Package skills provides the reference vocabulary of job terms and builds weighted
// requirements from term occurrences.
package skills

import (
	"strings"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

// Vocabulary is an extensible reference list of terms keyed by normalized form.
// Synonyms map variant spellings onto a canonical term.
type Vocabulary struct {
	terms    map[string]types.RequirementCategory
	synonyms map[string]string
	maxWords int
}

// NewVocabulary creates an empty vocabulary
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		terms:    make(map[string]types.RequirementCategory),
		synonyms: make(map[string]string),
		maxWords: 1,
	}
}

// NormalizeTerm lowercases a term and collapses internal whitespace
func NormalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

// Add registers a canonical term with its category
func (v *Vocabulary) Add(term string, category types.RequirementCategory) {
	key := NormalizeTerm(term)
	if key == "" {
		return
	}
	v.terms[key] = category
	v.track(key)
}

// AddSynonym maps variant onto canonical. The canonical term must already be present.
func (v *Vocabulary) AddSynonym(variant, canonical string) {
	key := NormalizeTerm(variant)
	target := NormalizeTerm(canonical)
	if key == "" || target == "" {
		return
	}
	if _, ok := v.terms[target]; !ok {
		return
	}
	v.synonyms[key] = target
	v.track(key)
}

func (v *Vocabulary) track(key string) {
	if n := len(strings.Fields(key)); n > v.maxWords {
		v.maxWords = n
	}
}

// Lookup resolves a phrase to its canonical term and category
func (v *Vocabulary) Lookup(phrase string) (string, types.RequirementCategory, bool) {
	key := NormalizeTerm(phrase)
	if canonical, ok := v.synonyms[key]; ok {
		key = canonical
	}
	category, ok := v.terms[key]
	if !ok {
		return "", "", false
	}
	return key, category, true
}

// MaxWords returns the word count of the longest known phrase
func (v *Vocabulary) MaxWords() int {
	return v.maxWords
}

// Len returns the number of canonical terms
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Merge copies all terms and synonyms from other into v
func (v *Vocabulary) Merge(other *Vocabulary) {
	if other == nil {
		return
	}
	for term, cat := range other.terms {
		v.Add(term, cat)
	}
	for variant, canonical := range other.synonyms {
		v.AddSynonym(variant, canonical)
	}
}

// Default returns a fresh copy of the built-in vocabulary
func Default() *Vocabulary {
	v := NewVocabulary()
	for cat, terms := range defaultTerms {
		for _, t := range terms {
			v.Add(t, cat)
		}
	}
	for variant, canonical := range defaultSynonyms {
		v.AddSynonym(variant, canonical)
	}
	return v
}

var defaultTerms = map[types.RequirementCategory][]string{
	types.CategorySkill: {
		"python", "java", "javascript", "typescript", "go", "rust", "c++", "c#", "ruby", "php",
		"scala", "kotlin", "swift", "sql", "nosql", "html", "css", "bash", "shell",
		"machine learning", "deep learning", "data science", "data analysis", "ai", "nlp",
		"api", "rest", "graphql", "grpc", "microservices", "distributed systems", "ci/cd",
		"devops", "cloud", "security", "testing", "automation", "migration", "architecture",
		"backend", "frontend", "full stack", "infrastructure", "observability", "performance",
		"scalability", "etl", "data pipelines", "agile", "scrum", "system design",
		"product management", "project management", "documentation", "debugging",
	},
	types.CategoryTool: {
		"docker", "kubernetes", "aws", "azure", "gcp", "git", "github", "gitlab", "jenkins",
		"terraform", "ansible", "jira", "linux", "postgresql", "mysql", "mongodb", "redis",
		"kafka", "rabbitmq", "elasticsearch", "react", "angular", "vue", "node.js", "express",
		"django", "flask", "fastapi", "spring", "tensorflow", "pytorch", "pandas", "numpy",
		"scikit-learn", "spark", "airflow", "grafana", "prometheus", "github actions",
		"figma", "excel", "tableau", "salesforce", "snowflake", "datadog",
	},
	types.CategoryQualification: {
		"bachelor", "master", "phd", "degree", "computer science", "engineering degree",
		"certification", "security clearance",
	},
	types.CategorySoftSkill: {
		"leader", "leadership", "communication", "collaboration", "teamwork", "mentoring",
		"ownership", "problem solving", "stakeholder management", "initiative",
		"adaptability", "time management", "attention to detail", "self-starter",
	},
}

var defaultSynonyms = map[string]string{
	"golang":              "go",
	"js":                  "javascript",
	"ts":                  "typescript",
	"k8s":                 "kubernetes",
	"nodejs":              "node.js",
	"node":                "node.js",
	"reactjs":             "react",
	"react.js":            "react",
	"vuejs":               "vue",
	"vue.js":              "vue",
	"postgres":            "postgresql",
	"amazon web services": "aws",
	"google cloud":        "gcp",
	"ml":                  "machine learning",
	"cicd":                "ci/cd",
	"sklearn":             "scikit-learn",
	"bachelors":           "bachelor",
	"masters":             "master",
	"leaders":             "leader",
	"mentorship":          "mentoring",
	"communicator":        "communication",
	"collaborative":       "collaboration",
	"restful":             "rest",
	"migrations":          "migration",
	"apis":                "api",
	"full-stack":          "full stack",
	"problem-solving":     "problem solving",
	"self starter":        "self-starter",
}
