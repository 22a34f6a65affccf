// Package wavload locates the playable content of RIFF wave files held in
// memory.
//
// Decode validates the fmt chunk against the codec it announces (PCM, IEEE
// float, MS-ADPCM, xWMA, XMA2 and WAVE_FORMAT_EXTENSIBLE wrappers), finds the
// data chunk, the first loop region of a wsmp or smpl chunk and, for xWMA and
// XMA2, the dpds or seek table. The returned Audio borrows the decoded
// buffer; nothing is copied.
//
// The lower level resolvers are exported too:
//
//   - FindChunk and Chunks walk chunk headers
//   - FindFormatAndData resolves the format and sample data
//   - FindLoop resolves the loop region
//   - FindTable resolves a seek table
//   - FindInfo reads LIST INFO text metadata
//
// Errors wrap a small set of sentinels (ErrTruncated, ErrMalformed,
// ErrNotAWaveFile, ErrUnsupportedFormat, ...) that can be tested with
// errors.Is or classified with KindOf.
//
// Encoder builds wave files in memory, which the tools under cmd and the
// tests use to produce content for the decoder.
package wavload
