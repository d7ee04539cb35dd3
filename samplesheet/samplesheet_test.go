package samplesheet_test

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csna/isoprep/samplesheet"
	"github.com/csna/isoprep/shortread"
	gerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, ioutil.WriteFile(path, nil, 0644))
}

func readFile(t *testing.T, path string) string {
	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// fakeResolver resolves the sample IDs in found and records every call.
type fakeResolver struct {
	found map[string]string
	calls []string
}

func (r *fakeResolver) Resolve(ctx context.Context, sampleID string) shortread.Result {
	r.calls = append(r.calls, sampleID)
	if path, ok := r.found[sampleID]; ok {
		return shortread.Result{SampleID: sampleID, Path: path}
	}
	return shortread.Result{SampleID: sampleID, Reason: gerrors.E(gerrors.NotExist, "no short reads")}
}

func TestNaming(t *testing.T) {
	expect.EQ(t, samplesheet.TrimSuffixID("/a/b/CAST_F_striatum.hifi.merged.bam", samplesheet.HiFiSuffix), "CAST_F_striatum")
	expect.EQ(t, samplesheet.TrimSuffixID("x.hifi.merged.bam.hifi.merged.bam", samplesheet.HiFiSuffix), "x.hifi.merged.bam")
	expect.EQ(t, samplesheet.FirstFieldID("/d/CAST-F-striatum_RNA_CCS.merged.fa.gz"), "CAST-F-striatum")
	expect.EQ(t, samplesheet.FirstFieldID("nounderscore.merged.fa.gz"), "nounderscore.merged.fa.gz")
	expect.EQ(t, samplesheet.DashTokens("CAST-F-striatum"), []string{"CAST", "F", "striatum"})
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	for _, name := range []string{
		"b/PWK_M_striatum.hifi.merged.bam",
		"a/deep/CAST_F_striatum.hifi.merged.bam",
		"a/CAST_F_striatum.hifi.merged.bam.pbi",
		"c/AJ_F_striatum.hifi.merged.bam",
		"c/notes.txt",
	} {
		touch(t, filepath.Join(tempDir, name))
	}
	opts := samplesheet.DefaultBuildOpts
	opts.Root = tempDir
	opts.Reference = "/ref/mm39.fa"
	opts.GTF = "/ref/mm39.gtf"
	resolver := &fakeResolver{found: map[string]string{"PWK_M_striatum": "/fofn/PWK_M_striatum_shortreads.fofn"}}

	rows, s, err := samplesheet.Build(ctx, opts, resolver)
	require.NoError(t, err)
	expect.EQ(t, s, samplesheet.Summary{Rows: 3, ShortReads: 1})
	assert.Equal(t, []samplesheet.Row{
		{"CAST_F_striatum", filepath.Join(tempDir, "a/deep/CAST_F_striatum.hifi.merged.bam"), "/ref/mm39.fa", "/ref/mm39.gtf", "None"},
		{"PWK_M_striatum", filepath.Join(tempDir, "b/PWK_M_striatum.hifi.merged.bam"), "/ref/mm39.fa", "/ref/mm39.gtf", "/fofn/PWK_M_striatum_shortreads.fofn"},
		{"AJ_F_striatum", filepath.Join(tempDir, "c/AJ_F_striatum.hifi.merged.bam"), "/ref/mm39.fa", "/ref/mm39.gtf", "None"},
	}, rows)
	expect.EQ(t, resolver.calls, []string{"CAST_F_striatum", "PWK_M_striatum", "AJ_F_striatum"})

	rows, s, err = samplesheet.Build(ctx, opts, nil)
	require.NoError(t, err)
	expect.EQ(t, s.ShortReads, 0)
	for _, row := range rows {
		expect.EQ(t, row.ShortreadFOFN, samplesheet.None)
	}
}

func TestBuildNoFiles(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	touch(t, filepath.Join(tempDir, "x.bam"))

	opts := samplesheet.DefaultBuildOpts
	opts.Root = tempDir
	output := filepath.Join(tempDir, "out", "samplesheet.csv")
	_, err := samplesheet.WriteSamplesheet(ctx, output, opts, nil)
	expect.EQ(t, errors.Cause(err), samplesheet.ErrNoFiles)
	_, err = os.Stat(output)
	expect.True(t, os.IsNotExist(err))
}

func TestWriteSamplesheetDeterministic(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	for _, name := range []string{"in/B6_F_x.hifi.merged.bam", "in/NOD_M_x.hifi.merged.bam"} {
		touch(t, filepath.Join(tempDir, name))
	}
	opts := samplesheet.DefaultBuildOpts
	opts.Root = filepath.Join(tempDir, "in")
	opts.Reference = "ref.fa"
	opts.GTF = "ref.gtf"
	output := filepath.Join(tempDir, "out", "samplesheet.csv")

	_, err := samplesheet.WriteSamplesheet(ctx, output, opts, &fakeResolver{})
	require.NoError(t, err)
	first := readFile(t, output)
	expect.EQ(t, first, strings.Join([]string{
		"sampleID,flnc_bam,reference,reference_gtf,shortread_fofn",
		"B6_F_x," + filepath.Join(opts.Root, "B6_F_x.hifi.merged.bam") + ",ref.fa,ref.gtf,None",
		"NOD_M_x," + filepath.Join(opts.Root, "NOD_M_x.hifi.merged.bam") + ",ref.fa,ref.gtf,None",
		"",
	}, "\r\n"))

	_, err = samplesheet.WriteSamplesheet(ctx, output, opts, &fakeResolver{})
	require.NoError(t, err)
	expect.EQ(t, readFile(t, output), first)
	expect.EQ(t, samplesheet.FOFNDir(output), filepath.Join(tempDir, "out", "shortread_fofn"))
}

func TestWriteRowsQuoting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, samplesheet.WriteRows(&buf, []samplesheet.Row{{"a,b", "p", "r", "g", samplesheet.None}}))
	expect.EQ(t, buf.String(), "sampleID,flnc_bam,reference,reference_gtf,shortread_fofn\r\n\"a,b\",p,r,g,None\r\n")
}

func TestWriteMapSamplesheets(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	tempDir, err := filepath.EvalSymlinks(tempDir)
	require.NoError(t, err)

	in := filepath.Join(tempDir, "fasta")
	for _, name := range []string{
		"PWK-M-striatum_RNA_CCS.merged.fa.gz",
		"CAST-F-striatum_RNA_CCS.merged.fa.gz",
		"CAST-F-striatum_RNA_CCS.merged.bam.fastq.gz",
		"nested/AJ-F-striatum_RNA.merged.fa.gz",
	} {
		touch(t, filepath.Join(in, name))
	}
	output := filepath.Join(tempDir, "assets", "phase1_samplesheet.csv")
	rows, err := samplesheet.WriteMapSamplesheets(ctx, in, output)
	require.NoError(t, err)
	cast := filepath.Join(in, "CAST-F-striatum_RNA_CCS.merged.fa.gz")
	pwk := filepath.Join(in, "PWK-M-striatum_RNA_CCS.merged.fa.gz")
	assert.Equal(t, []samplesheet.MapRow{
		{Sample: "CAST-F-striatum", Reads: cast},
		{Sample: "PWK-M-striatum", Reads: pwk},
	}, rows)

	expect.EQ(t, readFile(t, output),
		"sample,bam,pbi,reads\r\nCAST-F-striatum,None,None,"+cast+"\r\nPWK-M-striatum,None,None,"+pwk+"\r\n")
	expect.EQ(t, readFile(t, samplesheet.SampleSheetPath(output, "CAST-F-striatum")),
		"sample,bam,pbi,reads\r\nCAST-F-striatum,None,None,"+cast+"\r\n")
	expect.EQ(t, samplesheet.SampleSheetPath(output, "PWK-M-striatum"),
		filepath.Join(tempDir, "assets", "PWK-M-striatum_samplesheet.csv"))
	_, err = os.Stat(samplesheet.SampleSheetPath(output, "PWK-M-striatum"))
	expect.NoError(t, err)
}

func TestWriteMapSamplesheetsNoFiles(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	touch(t, filepath.Join(tempDir, "fasta", "x.fa"))

	output := filepath.Join(tempDir, "out", "samplesheet.csv")
	_, err := samplesheet.WriteMapSamplesheets(ctx, filepath.Join(tempDir, "fasta"), output)
	expect.EQ(t, errors.Cause(err), samplesheet.ErrNoFiles)
	_, err = os.Stat(filepath.Dir(output))
	expect.True(t, os.IsNotExist(err))
}

func TestFindFilesLinkLoop(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	root := filepath.Join(tempDir, "root")
	bam := filepath.Join(root, "a", "CAST_F_striatum.hifi.merged.bam")
	touch(t, bam)
	touch(t, filepath.Join(tempDir, "other", "PWK_M_striatum.hifi.merged.bam"))
	require.NoError(t, os.Symlink("..", filepath.Join(root, "a", "up")))
	require.NoError(t, os.Symlink(filepath.Join(tempDir, "other"), filepath.Join(root, "other")))

	paths, err := samplesheet.FindFiles(ctx, root, samplesheet.HiFiSuffix, true)
	require.NoError(t, err)
	expect.EQ(t, paths, []string{bam})
}

func TestMapRowsResolvesLinks(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	tempDir, err := filepath.EvalSymlinks(tempDir)
	require.NoError(t, err)

	stored := filepath.Join(tempDir, "store", "CAST-F-striatum_RNA_CCS.merged.fa.gz")
	touch(t, stored)
	in := filepath.Join(tempDir, "in")
	require.NoError(t, os.MkdirAll(in, 0755))
	require.NoError(t, os.Symlink(stored, filepath.Join(in, "CAST-F-striatum_RNA_CCS.merged.fa.gz")))

	rows, err := samplesheet.MapRows(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []samplesheet.MapRow{{Sample: "CAST-F-striatum", Reads: stored}}, rows)
}

func TestWriteSamplesheetShortReads(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	in := filepath.Join(tempDir, "hifi")
	cast := filepath.Join(in, "CAST_F_striatum.hifi.merged.bam")
	nod := filepath.Join(in, "NOD_M_striatum.hifi.merged.bam")
	touch(t, cast)
	touch(t, nod)

	sopts := shortread.DefaultOpts
	sopts.KeyPath = filepath.Join(tempDir, "sample_key.txt")
	sopts.AssociationPath = filepath.Join(tempDir, "association.tsv")
	sopts.FastqDir = filepath.Join(tempDir, "fastqs")
	require.NoError(t, ioutil.WriteFile(sopts.KeyPath,
		[]byte("Strain\tSex\tInjection\tComments\tName\nCAST\tF\tSham\tok\tS1\n"), 0644))
	require.NoError(t, ioutil.WriteFile(sopts.AssociationPath,
		[]byte("Sample Name\tfastq name\nS1\tS1_L1_1.fq.gz\nS1\tS1_L1_2.fq.gz\n"), 0644))
	touch(t, filepath.Join(sopts.FastqDir, "S1_L1_1.fq.gz"))
	touch(t, filepath.Join(sopts.FastqDir, "S1_L1_2.fq.gz"))

	output := filepath.Join(tempDir, "out", "samplesheet.csv")
	sopts.OutDir = samplesheet.FOFNDir(output)
	opts := samplesheet.DefaultBuildOpts
	opts.Root = in
	opts.Reference = "ref.fa"
	opts.GTF = "ref.gtf"

	s, err := samplesheet.WriteSamplesheet(ctx, output, opts, shortread.NewResolver(sopts))
	require.NoError(t, err)
	expect.EQ(t, s, samplesheet.Summary{Rows: 2, ShortReads: 1})

	fofn := filepath.Join(tempDir, "out", "shortread_fofn", "CAST_F_striatum_shortreads.fofn")
	expect.EQ(t, readFile(t, output), strings.Join([]string{
		"sampleID,flnc_bam,reference,reference_gtf,shortread_fofn",
		"CAST_F_striatum," + cast + ",ref.fa,ref.gtf," + fofn,
		"NOD_M_striatum," + nod + ",ref.fa,ref.gtf,None",
		"",
	}, "\r\n"))
	expect.EQ(t, readFile(t, fofn),
		filepath.Join(sopts.FastqDir, "S1_L1_1.fq.gz")+" "+filepath.Join(sopts.FastqDir, "S1_L1_2.fq.gz")+"\n")
	_, err = os.Stat(filepath.Join(sopts.OutDir, "NOD_M_striatum_shortreads.fofn"))
	expect.True(t, os.IsNotExist(err))
}
