package domain

// LessonEntry lesson as listed on the dashboard
type LessonEntry struct {
	*LessonModel
	Position        int  `json:"position"`
	Unlocked        bool `json:"unlocked"`
	Completed       bool `json:"completed"`
	ProgressPercent int  `json:"progress_percent"`
}

type CourseSummary struct {
	CompletedCount int `json:"completed_count"`
	Total          int `json:"total"`
	TotalProgress  int `json:"total_progress"`
}

// DashboardView Partial is set when one of the reads failed
type DashboardView struct {
	Profile *ProfileModel  `json:"profile"`
	Lessons []*LessonEntry `json:"lessons"`
	Summary CourseSummary  `json:"summary"`
	Partial bool           `json:"partial"`
}

type LessonLink struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Enabled bool   `json:"enabled"`
}

type QuizQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizView quiz without the answer key
type QuizView struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Questions []QuizQuestionView `json:"questions"`
}

// LessonDetailView Position is -1 when the lesson list could not be read
type LessonDetailView struct {
	Lesson     *LessonModel       `json:"lesson"`
	Position   int                `json:"position"`
	Files      []*LessonFileModel `json:"files"`
	Quiz       *QuizView          `json:"quiz"`
	Progress   *ProgressModel     `json:"progress"`
	LastResult *QuizResultModel   `json:"last_result"`
	Previous   *LessonLink        `json:"previous"`
	Next       *LessonLink        `json:"next"`
	Partial    bool               `json:"partial"`
}

type CurriculumEntry struct {
	Position        int    `json:"position"`
	Title           string `json:"title"`
	DurationMinutes *int   `json:"duration_minutes"`
}

type CurriculumView struct {
	Title   string             `json:"title"`
	Lessons []*CurriculumEntry `json:"lessons"`
	Partial bool               `json:"partial"`
}
