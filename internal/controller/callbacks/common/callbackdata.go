package common

// Callback data. Constants ending in ":" take one argument.
const (
	Menu      = "menu"
	Noop      = "noop"
	SlotTaken = "slot_taken"
)

// Account
const (
	AuthRole = "auth_role:" // auth_role:patient
)

// Booking form
const (
	BkCounterparty = "bk_cp:"   // bk_cp:<user id>
	BkPage         = "bk_page:" // bk_page:<day offset>
	BkDay          = "bk_day:"  // bk_day:20250510
	BkSlot         = "bk_slot:" // bk_slot:1430
	BkTypeDate     = "bk_type_date"
	BkTypeTime     = "bk_type_time"
	BkImage        = "bk_img"
	BkConfirm      = "bk_confirm"
	BkAbort        = "bk_abort"
	BkBackCalendar = "bk_back_cal"
	BkStart        = "bk_start"
)

// Appointments
const (
	ApList      = "ap_list"
	ApEdit      = "ap_edit:"       // ap_edit:<appointment id>
	ApCancel    = "ap_cancel:"     // ap_cancel:<appointment id>
	ApCancelYes = "ap_cancel_yes:" // ap_cancel_yes:<appointment id>
	ApNotes     = "ap_notes:"      // ap_notes:<appointment id>
	NtAdd       = "nt_add:"        // nt_add:<appointment id>
)

// Care links and requests
const (
	PsList   = "ps_list"
	PsReq    = "ps_req:"  // ps_req:<psychologist id>
	PsSend   = "ps_send:" // ps_send:<psychologist id>, sends without a message
	RqList   = "rq_list"
	RqAccept = "rq_ok:" // rq_ok:<request id>
	RqReject = "rq_no:" // rq_no:<request id>
	LkList   = "lk_list"
	LkEnd    = "lk_end:"     // lk_end:<link id>
	LkEndYes = "lk_end_yes:" // lk_end_yes:<link id>
	LkHist   = "lk_hist:"    // lk_hist:<patient id>
)

// Assessment
const (
	AvStart     = "av_start"
	AvMood      = "av_mood:"    // av_mood:1..5
	AvQuality   = "av_quality:" // av_quality:1..5
	AvSkipNotes = "av_skip_notes"
	AvHistory   = "av_hist"
)

// Admin
const (
	AdUsers      = "ad_users:" // ad_users:<page>
	AdActivate   = "ad_on:"    // ad_on:<user id>
	AdDeactivate = "ad_off:"   // ad_off:<user id>
)
