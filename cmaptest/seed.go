package cmaptest

// DemoAPIKey is the key the demo binary runs with.
const DemoAPIKey = "demo-key"

const (
	catalogCSV = `Variable,Table_Name,Unit,Sensor,Make,Spatial_Resolution,Temporal_Resolution
sst,tblSST,degree C,satellite,Observation,1/4 degree,Daily
salinity,tblArgoMerge,psu,float,Observation,Irregular,Irregular
prochloro_abundance,tblSeaFlow,cells/ul,flow cytometry,Observation,Irregular,Irregular`

	sstTableCSV = `time,lat,lon,sst
2016-04-30T00:00:00,10.125,-170.375,27.33
2016-04-30T00:00:00,10.375,-170.125,27.41
2016-05-01T00:00:00,10.625,-169.875,27.12
2016-05-02T00:00:00,10.875,-169.625,26.98
2016-05-03T00:00:00,11.125,-169.375,27.05`

	datasetsCSV = `ID,Dataset_Name,Dataset_Long_Name,Distributor
1,SST,NOAA AVHRR Sea Surface Temperature,NOAA
2,Big,Synthetic bulk dataset,UW
3,SeaFlow,SeaFlow underway flow cytometry,UW`

	cruisesCSV = `ID,Nickname,Name,Ship_Name,Chief_Name
42,Gradients_1,KOK1606,Ka'imikai-O-Kanaloa,Virginia Armbrust
57,Gradients_3,KM1906,Kilo Moana,Ginger Armbrust
61,Diel,KM1513,Kilo Moana,Edward DeLong`

	cruiseKOKCSV = `ID,Nickname,Name,Ship_Name,Chief_Name
42,Gradients_1,KOK1606,Ka'imikai-O-Kanaloa,Virginia Armbrust`

	cruiseGradientsCSV = `ID,Nickname,Name,Ship_Name,Chief_Name
42,Gradients_1,KOK1606,Ka'imikai-O-Kanaloa,Virginia Armbrust
57,Gradients_3,KM1906,Kilo Moana,Ginger Armbrust`

	cruiseBoundsCSV = `dt1,dt2,lat1,lat2,lon1,lon2
2016-04-20T00:00:00,2016-05-03T23:59:59,22.5,38.1,-158.2,-157.9`

	cruiseTrajectoryCSV = `time,lat,lon
2016-04-20T01:10:00,22.5,-158
2016-04-21T13:30:00,25.1,-158.1
2016-04-23T08:45:00,29.7,-158.05
2016-04-26T17:20:00,34.3,-157.95
2016-04-29T09:00:00,38.1,-157.9`

	cruiseVariablesCSV = `Table_Name,Variable,Unit,Sensor
tblSeaFlow,prochloro_abundance,cells/ul,flow cytometry
tblUnderway_Temperature,temp,degree C,thermosalinograph`

	spaceTimeCSV = `time,lat,lon,depth,sst
2016-04-30T00:00:00,10.125,-170.375,0,27.33
2016-04-30T00:00:00,10.375,-170.125,0,27.41
2016-04-30T00:00:00,10.625,-169.875,0,27.12`

	timeSeriesCSV = `time,sst,sst_std
2016-04-30T00:00:00,27.29,0.18
2016-05-01T00:00:00,27.1,0.12
2016-05-02T00:00:00,26.99,0.2`

	depthProfileCSV = `depth,sst,sst_std
0,27.29,0.18
10,26.8,0.12
25,26.1,0.09`

	matchCSV = `time,lat,lon,depth,prochloro_abundance,sst
2016-04-20T01:10:00,22.5,-158,5,128000,24.8
2016-04-21T13:30:00,25.1,-158.1,5,96000,24.1
2016-04-23T08:45:00,29.7,-158.05,5,52000,22.9`
)

// SeedDemo loads a small, self-consistent world: the tblSST dataset with
// stats below the full-fetch ceiling, a tblBig dataset right at it, three
// cruises ("gradients" resolves ambiguously, KOK1606 uniquely), and
// fixtures for every catalog and subset operation.
func (s *Server) SeedDemo() {
	s.RegisterTable("tblSST", sstTableCSV)
	s.RegisterTable("tblDatasets", datasetsCSV)
	s.RegisterTable("tblBig", sstTableCSV)

	// catalog
	s.StubQuery("EXEC uspCatalog", catalogCSV)
	s.StubQuery("EXEC uspSearchCatalog 'sst'", `Variable,Table_Name,Unit,Sensor,Make,Spatial_Resolution,Temporal_Resolution
sst,tblSST,degree C,satellite,Observation,1/4 degree,Daily`)
	s.StubQuery("INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME='tblSST'", `COLUMN_NAME
time
lat
lon
sst`)
	s.StubQuery("EXEC uspDatasetMetadata 'tblSST'", `Dataset_Name,Dataset_Long_Name,Description,Distributor
SST,NOAA AVHRR Sea Surface Temperature,Optimally interpolated sea surface temperature,NOAA`)
	s.StubQuery("EXEC uspVariableMetaData 'tblSST', 'sst'", `Variable,Table_Name,Long_Name,Unit,Comment
sst,tblSST,Sea Surface Temperature,degree C,NRT product`)

	// per-variable catalog projections
	s.StubQuery("DISTINCT(Dataset_ID) FROM dbo.udfCatalog() WHERE Table_Name='tblSST'", "Dataset_ID\n1")
	s.StubQuery("DISTINCT(Dataset_ID) FROM dbo.udfCatalog() WHERE Table_Name='tblBig'", "Dataset_ID\n2")
	s.StubQuery("SELECT * FROM dbo.udfCatalog() WHERE Table_Name='tblSST' AND Variable='sst'", `Variable,Table_Name,Unit,Sensor,Make,Spatial_Resolution,Temporal_Resolution
sst,tblSST,degree C,satellite,Observation,1/4 degree,Daily`)
	s.StubQuery("Temporal_Resolution, Spatial_Resolution FROM dbo.udfCatalog() WHERE Table_Name='tblSST' AND Variable='sst'", `Table_Name,Variable,Temporal_Resolution,Spatial_Resolution
tblSST,sst,Daily,1/4 degree`)
	s.StubQuery("Time_Min, Time_Max, Lat_Min, Lat_Max", `Table_Name,Variable,Time_Min,Time_Max,Lat_Min,Lat_Max,Lon_Min,Lon_Max,Depth_Min,Depth_Max
tblSST,sst,1981-09-01,2024-12-31,-89.875,89.875,-179.875,179.875,0,0`)
	s.StubQuery("Variable_Min, Variable_Max, Variable_Mean", `Table_Name,Variable,Variable_Min,Variable_Max,Variable_Mean,Variable_STD,Variable_Count
tblSST,sst,-1.8,34.9,18.2,9.6,17000000`)

	// variable lookups
	s.StubQuery("SELECT Long_Name, Short_Name FROM tblVariables WHERE Table_Name='tblSST' AND Short_Name='sst'", "Long_Name,Short_Name\nSea Surface Temperature,sst")
	s.StubQuery("SELECT Unit, Short_Name FROM tblVariables WHERE Table_Name='tblSST' AND Short_Name='sst'", "Unit,Short_Name\ndegree C,sst")
	s.StubQuery("COL_LENGTH('tblSST', 'sst')", "RESULT\n4")
	s.StubQuery("COL_LENGTH('tblSST', 'windspeed')", "RESULT\n\"\"")
	s.StubQuery("JOIN tblSpatial_Resolutions ON [tblVariables].Spatial_Res_ID=[tblSpatial_Resolutions].ID WHERE Table_Name='tblSST'", "Spatial_Res_ID,Spatial_Resolution\n2,1/4 degree")
	s.StubQuery("JOIN tblSpatial_Resolutions ON [tblVariables].Spatial_Res_ID=[tblSpatial_Resolutions].ID WHERE Table_Name='tblSeaFlow'", "Spatial_Res_ID,Spatial_Resolution\n1,Irregular")

	// dataset statistics: tblSST sits well below the ceiling, tblBig at it
	s.StubQuery("SELECT JSON_stats FROM tblDataset_Stats WHERE Dataset_ID=1", `JSON_stats
"{""lat"": {""count"": 5, ""min"": 10.125, ""max"": 11.125}}"`)
	s.StubQuery("SELECT JSON_stats FROM tblDataset_Stats WHERE Dataset_ID=2", `JSON_stats
"{""lat"": {""count"": 2000000, ""min"": -89.875, ""max"": 89.875}}"`)
	s.StubQuery("SELECT Reference FROM tblDataset_References WHERE Dataset_ID=1", `Reference
"Reynolds, R. W. et al. (2007): Daily high-resolution-blended analyses for sea surface temperature."
https://www.ncei.noaa.gov/products/optimum-interpolation-sst`)

	// cruises
	s.StubQuery("EXEC uspCruises", cruisesCSV)
	s.StubQuery("EXEC uspCruiseByName 'KOK1606'", cruiseKOKCSV)
	s.StubQuery("EXEC uspCruiseByName 'gradients'", cruiseGradientsCSV)
	s.StubQuery("EXEC uspCruiseByName", "ID,Nickname,Name,Ship_Name,Chief_Name")
	s.StubQuery("EXEC uspCruiseBounds 42", cruiseBoundsCSV)
	s.StubQuery("EXEC uspCruiseTrajectory 42", cruiseTrajectoryCSV)
	s.StubQuery("dbo.udfCruiseVariables(42)", cruiseVariablesCSV)

	// colocalization
	s.StubQuery("EXEC uspMatch", matchCSV)

	// subset procedures
	s.StubProc("uspSpaceTime", spaceTimeCSV)
	s.StubProc("uspTimeSeries", timeSeriesCSV)
	s.StubProc("uspWeekly", timeSeriesCSV)
	s.StubProc("uspMonthly", timeSeriesCSV)
	s.StubProc("uspQuarterly", timeSeriesCSV)
	s.StubProc("uspAnnual", timeSeriesCSV)
	s.StubProc("uspDepthProfile", depthProfileCSV)
	s.StubProc("uspSectionMap", spaceTimeCSV)
}
