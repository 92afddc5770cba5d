package bot

// Service replies. Quest narratives live in the script; these are the fixed
// bot-side texts around registration, administration and photo review.
const (
	replyNotRegistered = "🚫 Ваша команда не зареєстрована."
	replyRescanQR      = "⚠️ Ваша команда не розпізнана. Будь ласка, перескануйте QR-код вашої команди."
	replyNoPermission  = "❌ У вас немає прав для виконання цієї команди."
	replyUnknownTeam   = "❌ Невідомий код команди."
	replyUnrecognized  = "⚠️ Щось не те. Можливо, ви ввели неправильний код або повідомлення."

	replyNeedText       = "⚠️ Будь ласка, надайте текст повідомлення."
	replyNeedTeamText   = "⚠️ Будь ласка, надайте код команди та текст повідомлення."
	replyNeedMemberID   = "⚠️ Будь ласка, надайте ID користувача для переміщення."
	replyNeedMemberTeam = "⚠️ Будь ласка, надайте ID користувача та код команди."

	replyBroadcastSent = "✅ Повідомлення надіслано всім користувачам."
	replyPendingReview = "⏳ Ваше фото на перевірці. Будь ласка, зачекайте."

	coordinatorPrefix = "📢 Повідомлення від координатора: "
	listHeader        = "📋 <b>Список зареєстрованих користувачів:</b>\n"
	listEmptyTeam     = "Немає зареєстрованих користувачів."
)
