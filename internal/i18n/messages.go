// Package i18n holds the localized user-facing feedback strings. The product
// is Portuguese-first; English is kept for linked accounts abroad.
package i18n

type key string

const (
	MsgCorrect        key = "correct"
	MsgIncorrect      key = "incorrect"
	MsgHintPrefix     key = "hint_prefix"
	MsgLessonFinished key = "lesson_finished"
	MsgLessonLocked   key = "lesson_locked"
	MsgLessonNotFound key = "lesson_not_found"
	MsgSaveFailed     key = "save_failed"
	MsgTeacherLinked  key = "teacher_linked"
	MsgEmptyAnswer    key = "empty_answer"
)

var messages = map[string]map[key]string{
	"pt": {
		MsgCorrect:        "Correto! Muito bem!",
		MsgIncorrect:      "Incorreto. Tente novamente!",
		MsgHintPrefix:     "Dica: começa com",
		MsgLessonFinished: "Aula concluída! Progresso salvo!",
		MsgLessonLocked:   "Conclua a aula anterior para desbloquear esta.",
		MsgLessonNotFound: "Lição não encontrada.",
		MsgSaveFailed:     "Erro ao salvar. Tente novamente.",
		MsgTeacherLinked:  "Professor vinculado com sucesso!",
		MsgEmptyAnswer:    "Sua resposta não pode estar vazia.",
	},
	"en": {
		MsgCorrect:        "Correct! Well done!",
		MsgIncorrect:      "Incorrect. Try again!",
		MsgHintPrefix:     "Hint: starts with",
		MsgLessonFinished: "Lesson finished! Progress saved!",
		MsgLessonLocked:   "Complete the previous lesson to unlock this one.",
		MsgLessonNotFound: "Lesson not found.",
		MsgSaveFailed:     "Failed to save. Please retry.",
		MsgTeacherLinked:  "Teacher linked successfully!",
		MsgEmptyAnswer:    "Your answer must not be empty.",
	},
}

// T returns the message for the locale, falling back to Portuguese.
func T(locale string, k key) string {
	if bundle, ok := messages[locale]; ok {
		if msg, ok := bundle[k]; ok {
			return msg
		}
	}
	return messages["pt"][k]
}
