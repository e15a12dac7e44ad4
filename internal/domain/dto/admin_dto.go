package dto

// AdminDashboard aggregates the platform counters shown on the admin home
// screen. Cached briefly in Redis; see the admin service.
type AdminDashboard struct {
	TotalUsers               int64            `json:"totalUsers"`
	TotalJobSeekers          int64            `json:"totalJobSeekers"`
	TotalEmployers           int64            `json:"totalEmployers"`
	TotalJobs                int64            `json:"totalJobs"`
	TotalApplications        int64            `json:"totalApplications"`
	PendingEmployerApprovals int64            `json:"pendingEmployerApprovals"`
	ActiveJobs               int64            `json:"activeJobs"`
	InactiveJobs             int64            `json:"inactiveJobs"`
	ApplicationsByStatus     map[string]int64 `json:"applicationsByStatus"`
	JobsByType               map[string]int64 `json:"jobsByType"`
}
