package disp

import (
	"math"
)

// ShowerPars is the array-level record of one event: the scalar values plus
// one entry per reconstruction method and one entry per telescope.
type ShowerPars struct {
	ShowerParsHDF5
	Rec []ShowerParsRecHDF5
	Tel []ShowerParsTelHDF5
}

// Image is a surviving telescope image of an event.
type Image struct {
	Telescope *TelescopeConfig
	Pars      TparsHDF5
}

// Event groups the array-level record of one event ordinal with the
// surviving images of the selected telescopes.
type Event struct {
	Ordinal        int
	Shower         *ShowerPars
	Images         []Image
	EmissionHeight float32
}

// DeriveRecord computes the training record for one image. The MC direction
// offset is stored with the opposite sign in y, hence the "+ MCyoff" terms.
func DeriveRecord(shower *ShowerPars, pars *TparsHDF5, tel *TelescopeConfig, recID int) TrainingRecord {
	rec := shower.Rec[recID]
	pointing := shower.Tel[tel.Ordinal]

	r := TrainingRecord{
		RunNumber:       shower.RunNumber,
		EventNumber:     shower.EventNumber,
		Tel:             uint32(tel.Ordinal + 1),
		CenX:            pars.CenX,
		CenY:            pars.CenY,
		SinPhi:          pars.SinPhi,
		CosPhi:          pars.CosPhi,
		Size:            float32(math.Log10(float64(pars.Size))),
		NTubes:          pars.NTubes,
		Loss:            pars.Loss,
		Asym:            pars.Asymmetry,
		Width:           pars.Width,
		Length:          pars.Length,
		Wol:             widthOverLength(pars.Width, pars.Length),
		Dist:            pars.Dist,
		Fui:             pars.Fui,
		TGradX:          pars.TGradX,
		MeanPedvarImage: pars.MeanPedvarImage,
		MCe0:            shower.MCe0,
		MCxoff:          shower.MCxoff,
		MCyoff:          shower.MCyoff,
		MCxcore:         shower.MCxcore,
		MCycore:         shower.MCycore,
		Xcore:           rec.Xcore,
		Ycore:           rec.Ycore,
		Xoff:            rec.Xoff,
		Yoff:            rec.Yoff,
		LTrig:           shower.LTrig,
		NImages:         float32(rec.NImages),
		EHeight:         -1,
		MCze:            shower.MCze,
		MCaz:            shower.MCaz,
		Ze:              90. - pointing.TelElevation,
		Az:              pointing.TelAzimuth,
	}

	r.Rcore = coreDistance(rec.Xcore, rec.Ycore, r.Ze, r.Az, tel)
	r.MCrcore = coreDistance(shower.MCxcore, shower.MCycore, shower.MCze, shower.MCaz, tel)

	r.Disp = offsetDistance(pars.CenX, pars.CenY, shower.MCxoff, shower.MCyoff)
	r.Cross = offsetDistance(pars.CenX, pars.CenY, rec.Xoff, rec.Yoff)
	r.DispPhi = float32(math.Atan2(float64(pars.SinPhi), float64(pars.CosPhi)) -
		math.Atan2(float64(pars.CenY+shower.MCyoff), float64(pars.CenX-shower.MCxoff)))
	r.DispError = dispError(pars, r.Disp, shower.MCxoff, shower.MCyoff)

	// energy target in ratio to image size
	r.DispEnergy = float32(math.Log10(float64(shower.MCe0)) / math.Log10(float64(pars.Size)))
	r.DispCore = r.Rcore
	return r
}

func widthOverLength(width, length float32) float32 {
	if length > 0 {
		return width / length
	}
	return 0
}

// coreDistance is the distance of the telescope to the shower axis, in the
// (y, -x, z) frame used by LinePointDistance.
func coreDistance(xcore, ycore, ze, az float32, tel *TelescopeConfig) float32 {
	return float32(LinePointDistance(
		float64(ycore), -float64(xcore), 0.,
		float64(ze), float64(az),
		float64(tel.Y), -float64(tel.X), float64(tel.Z)))
}

func offsetDistance(cenX, cenY, xoff, yoff float32) float32 {
	dx := cenX - xoff
	dy := cenY + yoff
	return float32(math.Sqrt(float64(dy*dy + dx*dx)))
}

// dispError is the distance between the true direction and the closer of
// the two points at distance disp along the image axis (head/tail ambiguity).
func dispError(pars *TparsHDF5, disp, xoff, yoff float32) float32 {
	x1 := pars.CenX - disp*pars.CosPhi
	x2 := pars.CenX + disp*pars.CosPhi
	y1 := pars.CenY - disp*pars.SinPhi
	y2 := pars.CenY + disp*pars.SinPhi
	return min(offsetDistance(x1, y1, xoff, yoff), offsetDistance(x2, y2, xoff, yoff))
}
