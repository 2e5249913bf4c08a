package job

import "strings"

type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
)

var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "Entry"
	ExperienceMid       ExperienceLevel = "Mid"
	ExperienceSenior    ExperienceLevel = "Senior"
	ExperienceLead      ExperienceLevel = "Lead"
	ExperienceExecutive ExperienceLevel = "Executive"
)

var ExperienceLevels = []ExperienceLevel{ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive}

type LocationType string

const (
	LocationRemote LocationType = "Remote"
	LocationHybrid LocationType = "Hybrid"
	LocationOnSite LocationType = "On-site"
)

var LocationTypes = []LocationType{LocationRemote, LocationHybrid, LocationOnSite}

type SalaryPeriod string

const (
	SalaryYearly  SalaryPeriod = "YEARLY"
	SalaryMonthly SalaryPeriod = "MONTHLY"
	SalaryHourly  SalaryPeriod = "HOURLY"
)

var SalaryPeriods = []SalaryPeriod{SalaryYearly, SalaryMonthly, SalaryHourly}

// Defaults applied to new job postings
const (
	DefaultCurrency        = "USD"
	DefaultSalaryPeriod    = SalaryYearly
	DefaultJobType         = JobTypeFullTime
	DefaultExperienceLevel = ExperienceMid
	DefaultLocationType    = LocationOnSite
)

// canonical returns the member of set equal to s ignoring case, or s as-is
func canonical[T ~string](set []T, s string) (T, bool) {
	for _, v := range set {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return T(s), false
}

// ParseJobType maps s onto a known job type, ignoring case
func ParseJobType(s string) (JobType, bool) { return canonical(JobTypes, s) }

// ParseExperienceLevel maps s onto a known experience level, ignoring case
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	return canonical(ExperienceLevels, s)
}

// ParseLocationType maps s onto a known location type, ignoring case
func ParseLocationType(s string) (LocationType, bool) { return canonical(LocationTypes, s) }

// ParseSalaryPeriod maps s onto a known salary period, ignoring case
func ParseSalaryPeriod(s string) (SalaryPeriod, bool) { return canonical(SalaryPeriods, s) }
