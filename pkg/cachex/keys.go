package cachex

import (
	"fmt"
	"time"
)

const (
	SimilarJobsTTL   = 5 * time.Minute
	PopularDomainTTL = 15 * time.Minute
	PopularSkillTTL  = 15 * time.Minute
)

func SimilarJobsKey(jobID string, n int) string {
	return fmt.Sprintf("similar:job:%s:%d", jobID, n)
}

func SimilarJobsPrefix() string {
	return "similar:job:"
}

func PopularDomainsKey(limit int) string {
	return fmt.Sprintf("popular:domains:%d", limit)
}

func PopularSkillsKey(limit int) string {
	return fmt.Sprintf("popular:skills:%d", limit)
}

func PopularPrefix() string {
	return "popular:"
}

func PopularDomainsPrefix() string {
	return "popular:domains:"
}

func PopularSkillsPrefix() string {
	return "popular:skills:"
}
