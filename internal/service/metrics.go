package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quizapp",
		Name:      "signups_total",
		Help:      "Количество успешных регистраций.",
	})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quizapp",
		Name:      "logins_total",
		Help:      "Попытки входа по исходу (ok, rejected).",
	}, []string{"outcome"})

	submissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quizapp",
		Name:      "quiz_submissions_total",
		Help:      "Количество сохраненных результатов викторины.",
	})

	submissionPercentage = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "quizapp",
		Name:      "quiz_submission_percentage",
		Help:      "Распределение процента правильных ответов.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})
)
