package callbacks

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/admin"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/booking"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/care"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
)

func same(t *testing.T, want, got CallbackFunc) {
	t.Helper()
	assert.Equal(t, reflect.ValueOf(want).Pointer(), reflect.ValueOf(got).Pointer())
}

func TestLookup_Disambiguation(t *testing.T) {
	tests := []struct {
		data string
		want CallbackFunc
	}{
		{common.ApCancel + "7", booking.HandleCancel},
		{common.ApCancelYes + "7", booking.HandleCancelConfirmed},
		{common.LkEnd + "3", care.HandleEndLink},
		{common.LkEndYes + "3", care.HandleEndLinkConfirmed},
		{common.RqAccept + "1", care.HandleAnswerRequest},
		{common.RqReject + "1", care.HandleAnswerRequest},
		{common.AdActivate + "u", admin.HandleToggle},
		{common.AdDeactivate + "u", admin.HandleToggle},
		{common.BkDay + "20250510", booking.HandleDay},
		{common.BkSlot + "1430", booking.HandleSlot},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, ok := lookup(tt.data)
			require.True(t, ok)
			same(t, tt.want, got)
		})
	}
}

func TestLookup_EveryButtonIsRouted(t *testing.T) {
	all := []string{
		common.Menu, common.Noop, common.SlotTaken, common.AuthRole + "patient",
		common.BkStart, common.BkCounterparty + "1", common.BkPage + "7", common.BkTypeDate,
		common.BkTypeTime, common.BkImage, common.BkConfirm, common.BkAbort, common.BkBackCalendar,
		common.ApList, common.ApEdit + "1", common.ApNotes + "1", common.NtAdd + "1",
		common.PsList, common.PsReq + "1", common.PsSend + "1", common.RqList, common.LkList,
		common.LkHist + "1", common.AvStart, common.AvMood + "3", common.AvQuality + "3",
		common.AvSkipNotes, common.AvHistory, common.AdUsers + "0",
	}
	for _, data := range all {
		_, ok := lookup(data)
		assert.True(t, ok, data)
	}
}

func TestLookup_Unknown(t *testing.T) {
	for _, data := range []string{"", "book_lesson:1", "menu2", "bk_start_x"} {
		_, ok := lookup(data)
		assert.False(t, ok, data)
	}
}
