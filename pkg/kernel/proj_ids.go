package kernel

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

type DomainID string

func NewDomainID(id string) DomainID { return DomainID(id) }
func (r DomainID) String() string    { return string(r) }
func (r DomainID) IsEmpty() bool     { return string(r) == "" }

type SubdomainID string

func NewSubdomainID(id string) SubdomainID { return SubdomainID(id) }
func (r SubdomainID) String() string       { return string(r) }
func (r SubdomainID) IsEmpty() bool        { return string(r) == "" }

type SkillID string

func NewSkillID(id string) SkillID { return SkillID(id) }
func (r SkillID) String() string   { return string(r) }
func (r SkillID) IsEmpty() bool    { return string(r) == "" }

// BucketURL is a public URL of an object in blob storage
type BucketURL string

func (b BucketURL) String() string { return string(b) }
