package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

func TestNewVerdict(t *testing.T) {
	t.Run("no diagnostics is valid", func(t *testing.T) {
		v := model.NewVerdict(nil)
		gt.True(t, v.Valid)
		gt.A(t, v.Diagnostics).Length(0)
	})

	t.Run("diagnostics make the verdict invalid", func(t *testing.T) {
		v := model.NewVerdict([]model.Diagnostic{
			{Check: model.CheckAccount, Message: "a"},
			{Check: model.CheckHomepage, Message: "b"},
		})
		gt.False(t, v.Valid)
		gt.Equal(t, v.Messages(), []string{"a", "b"})
		gt.True(t, v.Failed(model.CheckHomepage))
		gt.False(t, v.Failed(model.CheckTitle))
	})
}

func TestReport_Valid(t *testing.T) {
	report := &model.Report{}
	gt.True(t, report.Valid())

	report.Entries = append(report.Entries, model.EntryVerdict{Verdict: model.NewVerdict(nil)})
	gt.True(t, report.Valid())

	report.Entries = append(report.Entries, model.EntryVerdict{
		Verdict: model.NewVerdict([]model.Diagnostic{{Check: model.CheckNameMatch, Message: "x"}}),
	})
	gt.False(t, report.Valid())
}

func TestReport_ValidWithChangeVerdict(t *testing.T) {
	report := &model.Report{Change: model.NewVerdict(nil)}
	gt.True(t, report.Valid())

	report.Change = model.NewVerdict([]model.Diagnostic{{Check: model.CheckFileScope, Message: "x"}})
	gt.False(t, report.Valid())
}
