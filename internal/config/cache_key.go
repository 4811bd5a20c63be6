package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ExamAnswerKey returns the cache key for an exam's answer key hash
// (question position → correct option).
func (r *CacheKeyStruct) ExamAnswerKey(examID string) string {
	return fmt.Sprintf("exam:%s:key", examID)
}

// ExamStateKey returns the cache key for a user's in-progress answer and
// review-mark state for an exam.
func (r *CacheKeyStruct) ExamStateKey(examID string) string {
	return fmt.Sprintf("examState_%s", examID)
}

// ExamStartTimeKey returns the cache key for a user's exam timer start marker.
func (r *CacheKeyStruct) ExamStartTimeKey(examID string) string {
	return fmt.Sprintf("examStartTime_%s", examID)
}

var CacheKey = NewCacheKeyStruct()
