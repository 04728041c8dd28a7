package domain

import "errors"

// ErrNoSuchUser failed to validate the credential
var ErrNoSuchUser = errors.New("No such user or password is incorrect")

// ErrDuplicatedUser unique key constraint violation
var ErrDuplicatedUser = errors.New("Email is already registered")

// ErrUserTooManyRetry login attempts exceeded
var ErrUserTooManyRetry = errors.New("Too many login attempts, please try again later")

// ErrLessonNotFound lesson id does not exist
var ErrLessonNotFound = errors.New("Lesson not found")

// ErrLessonLocked previous lesson is not completed yet
var ErrLessonLocked = errors.New("Lesson is locked, complete the previous lesson first")

// ErrNoQuiz lesson has no quiz or the quiz has no questions
var ErrNoQuiz = errors.New("Lesson has no quiz")

// ErrQuizRequired lesson has a quiz, it can only be completed by passing it
var ErrQuizRequired = errors.New("Lesson must be completed by passing its quiz")

// ErrInvalidProgress progress percent out of range
var ErrInvalidProgress = errors.New("Progress must be between 0 and 100")

// ErrProgressNotSaved progress write failed, the learner may retry
var ErrProgressNotSaved = errors.New("Failed to save progress")
