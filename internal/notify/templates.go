package notify

import "fmt"

// Type enumerates the notification kinds stored in the notifications table.
type Type string

const (
	TypeNewArticle         Type = "new_article"
	TypeArticleApproved    Type = "article_approved"
	TypeArticleRejected    Type = "article_rejected"
	TypeArticleFlagged     Type = "article_flagged"
	TypeArticlePublished   Type = "article_published"
	TypeNewSubscriber      Type = "new_subscriber"
	TypeNewComment         Type = "new_comment"
	TypeNewLike            Type = "new_like"
	TypeSystemAnnouncement Type = "system_announcement"
)

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleRU Locale = "ru"

	DefaultLocale = LocaleEN
)

type template struct {
	Title   string
	Message string // fmt verb receives the article title
}

// templates is the static message set, keyed by (type, locale).
var templates = map[Type]map[Locale]template{
	TypeArticleApproved: {
		LocaleEN: {"Article approved", "Your article %q has been approved and published."},
		LocaleRU: {"Статья одобрена", "Ваша статья %q одобрена и опубликована."},
	},
	TypeArticleRejected: {
		LocaleEN: {"Article rejected", "Your article %q has been rejected."},
		LocaleRU: {"Статья отклонена", "Ваша статья %q отклонена."},
	},
	TypeArticleFlagged: {
		LocaleEN: {"Article flagged", "Your article %q has been flagged for review."},
		LocaleRU: {"Статья помечена", "Ваша статья %q помечена для проверки."},
	},
	TypeArticlePublished: {
		LocaleEN: {"Article published", "Your scheduled article %q is now published."},
		LocaleRU: {"Статья опубликована", "Ваша отложенная статья %q опубликована."},
	},
	TypeNewArticle: {
		LocaleEN: {"New article", "An author you follow published %q."},
		LocaleRU: {"Новая статья", "Автор, на которого вы подписаны, опубликовал %q."},
	},
	TypeNewSubscriber: {
		LocaleEN: {"New subscriber", "You have a new subscriber."},
		LocaleRU: {"Новый подписчик", "У вас новый подписчик."},
	},
}

// render builds the localized title and message for a notification. Unknown
// locales fall back to English; a moderation reason, when present, is
// appended to the message.
func render(typ Type, locale Locale, articleTitle, reason string) (string, string) {
	byLocale, ok := templates[typ]
	if !ok {
		return string(typ), articleTitle
	}

	tpl, ok := byLocale[locale]
	if !ok {
		tpl = byLocale[DefaultLocale]
	}

	message := tpl.Message
	if articleTitle != "" {
		message = fmt.Sprintf(tpl.Message, articleTitle)
	}
	if reason != "" {
		message = message + " " + reason
	}

	return tpl.Title, message
}
