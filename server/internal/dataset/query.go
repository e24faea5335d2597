package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/launchdash/launchdash/pkg/types"
)

// AtSite returns the records launched from name, in file order.
func (d *Dataset) AtSite(name string) []types.Record {
	df := where(d.frame, ColSite, series.Eq, name)
	return d.mustRecords(df)
}

// Filter returns the records whose payload lies in rng (inclusive) and, when
// site is Named, that were launched from that site.
func (d *Dataset) Filter(site types.Site, rng types.PayloadRange) []types.Record {
	if rng.Empty() {
		return nil
	}
	df := where(d.frame, ColPayload, series.GreaterEq, rng.Low)
	df = where(df, ColPayload, series.LessEq, rng.High)
	if name, ok := site.Name(); ok {
		df = where(df, ColSite, series.Eq, name)
	}
	return d.mustRecords(df)
}

// where keeps the rows of df matching one comparison. Chained calls AND the
// conditions together; gota ORs filters passed to a single Filter call.
func where(df dataframe.DataFrame, col string, cmp series.Comparator, v interface{}) dataframe.DataFrame {
	if df.Err != nil || df.Nrow() == 0 {
		return df
	}
	return df.Filter(dataframe.F{Colname: col, Comparator: cmp, Comparando: v})
}

// mustRecords converts a filtered frame back to records. The frame only ever
// holds rows already validated at load time, so a conversion failure means a
// filter produced a broken frame; no rows match in that case.
func (d *Dataset) mustRecords(df dataframe.DataFrame) []types.Record {
	if df.Err != nil {
		return nil
	}
	recs, err := recordsOf(df)
	if err != nil {
		return nil
	}
	return recs
}
