package domain

// QuizSource selects which collection a quiz draws its questions from.
type QuizSource string

const (
	QuizSourceAll        QuizSource = "ALL"
	QuizSourceFavourites QuizSource = "FAVOURITES"
)

func (s QuizSource) String() string { return string(s) }

func (s QuizSource) IsValid() bool {
	switch s {
	case QuizSourceAll, QuizSourceFavourites:
		return true
	}
	return false
}

// QuizState is the lifecycle state of a quiz engine.
type QuizState string

const (
	QuizStateIdle       QuizState = "IDLE"
	QuizStateInProgress QuizState = "IN_PROGRESS"
	QuizStateFinished   QuizState = "FINISHED"
)

func (s QuizState) String() string { return string(s) }

func (s QuizState) IsValid() bool {
	switch s {
	case QuizStateIdle, QuizStateInProgress, QuizStateFinished:
		return true
	}
	return false
}

// Language is the result of language detection relative to the dataset pair.
type Language string

const (
	LanguageSource       Language = "SOURCE"
	LanguageTarget       Language = "TARGET"
	LanguageUndetermined Language = "UNDETERMINED"
)

func (l Language) String() string { return string(l) }

func (l Language) IsValid() bool {
	switch l {
	case LanguageSource, LanguageTarget, LanguageUndetermined:
		return true
	}
	return false
}

// ExportFormat is the file format of a vocabulary export.
type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatJSON ExportFormat = "json"
	ExportFormatYAML ExportFormat = "yaml"
)

func (f ExportFormat) String() string { return string(f) }

func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportFormatXLSX, ExportFormatJSON, ExportFormatYAML:
		return true
	}
	return false
}
